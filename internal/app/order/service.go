package order

import (
	"context"
	"errors"
	"strings"

	"github.com/diillson/restaurante-api/internal/app/common"
	"github.com/diillson/restaurante-api/internal/domain/event"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/diillson/restaurante-api/internal/domain/repository"
	"github.com/diillson/restaurante-api/internal/infra/metrics"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	resource     = "Pedido"
	itemResource = "Item do pedido"

	invalidQuantity = "A quantidade deve ser maior que zero. Use a rota DELETE para remover o item."
)

// Service concentra a regra de negócio de pedidos e itens. Toda mutação roda
// numa transação; eventos só são publicados depois do commit.
type Service struct {
	store     repository.Store
	publisher event.Publisher
	metrics   *metrics.APIMetrics
	tracer    trace.Tracer
	logger    *zap.Logger
}

func NewService(store repository.Store, publisher event.Publisher, apiMetrics *metrics.APIMetrics, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		metrics:   apiMetrics,
		tracer:    otel.Tracer("restaurante-api/order"),
		logger:    logger,
	}
}

func (s *Service) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	orders, err := s.store.Orders().List(ctx, filter)
	return orders, common.MapError(err, resource)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.store.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, common.MapError(err, resource)
	}
	return order, nil
}

// GetOpenByTable retorna o pedido em aberto mais recente da mesa
func (s *Service) GetOpenByTable(ctx context.Context, mesaID int64) (*model.Order, error) {
	order, err := s.store.Orders().FindOpenByTable(ctx, mesaID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, apperrors.NotFoundf("Nenhum pedido aberto para a mesa %d", mesaID)
		}
		return nil, common.MapError(err, resource)
	}
	return order, nil
}

// Create grava o pedido com todos os itens. O preço de cada item é copiado do
// produto neste momento. Sem status, o pedido nasce Pendente.
func (s *Service) Create(ctx context.Context, req model.OrderCreate) (_ *model.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "order.Create")
	defer func() { endSpan(span, err) }()

	status, err := normalizeStatus(req.Status, model.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	for _, in := range req.Itens {
		if in.Quantidade <= 0 {
			return nil, apperrors.Validation(invalidQuantity, nil)
		}
	}

	var order *model.Order
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if err := checkHeader(ctx, tx, req.ClienteID, req.MesaID); err != nil {
			return err
		}
		if status == model.OrderStatusOpen {
			if err := ensureNoOpenOrder(ctx, tx, req.MesaID); err != nil {
				return err
			}
		}

		header := &model.Order{ClienteID: req.ClienteID, MesaID: req.MesaID, Status: status}
		if err := tx.Orders().Create(ctx, header); err != nil {
			return err
		}

		items := make([]*model.OrderItem, 0, len(req.Itens))
		for _, in := range req.Itens {
			item, err := newItem(ctx, tx, header.ID, in.ProdutoID, in.Quantidade)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		if err := tx.OrderItems().Create(ctx, items...); err != nil {
			return err
		}

		var err error
		order, err = tx.Orders().GetByID(ctx, header.ID)
		return err
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	span.SetAttributes(attribute.Int64("pedido.id", order.ID), attribute.Int("pedido.itens", len(order.Itens)))
	s.metrics.OrderCreated("itens")
	s.logger.Info("Pedido criado",
		zap.Int64("id", order.ID),
		zap.Int64("mesa_id", order.MesaID),
		zap.Int("itens", len(order.Itens)),
		zap.String("total", order.Total.StringFixed(2)))
	s.publish(ctx, event.New(event.OrderCreated, order.ID, order))

	return order, nil
}

// OpenForTable abre um pedido vazio para a mesa. Só pode haver um pedido
// aberto por mesa.
func (s *Service) OpenForTable(ctx context.Context, mesaID int64, req model.OrderOpen) (_ *model.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "order.OpenForTable", trace.WithAttributes(attribute.Int64("mesa.id", mesaID)))
	defer func() { endSpan(span, err) }()

	var order *model.Order
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if err := checkHeader(ctx, tx, req.ClienteID, mesaID); err != nil {
			return err
		}
		if err := ensureNoOpenOrder(ctx, tx, mesaID); err != nil {
			return err
		}

		header := &model.Order{ClienteID: req.ClienteID, MesaID: mesaID, Status: model.OrderStatusOpen}
		if err := tx.Orders().Create(ctx, header); err != nil {
			return err
		}

		var err error
		order, err = tx.Orders().GetByID(ctx, header.ID)
		return err
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	s.metrics.OrderCreated("mesa")
	s.logger.Info("Pedido aberto para mesa", zap.Int64("id", order.ID), zap.Int64("mesa_id", mesaID))
	s.publish(ctx, event.New(event.OrderCreated, order.ID, order))

	return order, nil
}

// Update aplica o patch do cabeçalho e, quando a lista de itens vem no corpo,
// reconcilia os itens persistidos com ela:
//   - item com id: apenas os campos presentes são aplicados
//   - item sem id: novo item, exige produto e quantidade
//   - item persistido ausente da lista: removido
func (s *Service) Update(ctx context.Context, id int64, req model.OrderUpdate) (_ *model.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "order.Update", trace.WithAttributes(attribute.Int64("pedido.id", id)))
	defer func() { endSpan(span, err) }()

	var order *model.Order
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		current, err := tx.Orders().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Status != nil {
			status, err := normalizeStatus(req.Status, current.Status)
			if err != nil {
				return err
			}
			req.Status = &status
		}
		req.ApplyHeader(current)
		if req.ClienteID != nil || req.MesaID != nil {
			if err := checkHeader(ctx, tx, current.ClienteID, current.MesaID); err != nil {
				return err
			}
		}
		if err := tx.Orders().Update(ctx, current); err != nil {
			return err
		}

		if req.Itens != nil {
			if err := reconcileItems(ctx, tx, current, req.Itens); err != nil {
				return err
			}
		}

		order, err = tx.Orders().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	s.logger.Info("Pedido atualizado", zap.Int64("id", id), zap.Int("itens", len(order.Itens)))
	s.publish(ctx, event.New(event.OrderUpdated, order.ID, order))

	return order, nil
}

func reconcileItems(ctx context.Context, tx repository.Store, order *model.Order, payload []model.OrderItemUpdate) error {
	persisted := make(map[int64]*model.OrderItem, len(order.Itens))
	for i := range order.Itens {
		persisted[order.Itens[i].ID] = &order.Itens[i]
	}

	keep := make(map[int64]bool, len(payload))
	var created []*model.OrderItem

	for _, in := range payload {
		if in.ID == nil {
			if in.ProdutoID == nil || in.Quantidade == nil {
				return apperrors.Validation("Novos itens exigem produto_id e quantidade", nil)
			}
			if *in.Quantidade <= 0 {
				return apperrors.Validation(invalidQuantity, nil)
			}
			item, err := newItem(ctx, tx, order.ID, *in.ProdutoID, *in.Quantidade)
			if err != nil {
				return err
			}
			created = append(created, item)
			continue
		}

		item, ok := persisted[*in.ID]
		if !ok {
			return apperrors.NotFoundf("Item %d não pertence ao pedido %d", *in.ID, order.ID)
		}
		keep[item.ID] = true

		if in.Quantidade != nil {
			if *in.Quantidade <= 0 {
				return apperrors.Validation(invalidQuantity, nil)
			}
			item.Quantidade = *in.Quantidade
		}
		// O preço unitário continua o do momento em que o item foi criado
		if in.ProdutoID != nil && *in.ProdutoID != item.ProdutoID {
			if _, err := tx.Products().GetByID(ctx, *in.ProdutoID); err != nil {
				return common.MapError(err, "Produto")
			}
			item.ProdutoID = *in.ProdutoID
			item.Produto = nil
		}
		if in.Quantidade != nil || in.ProdutoID != nil {
			if err := tx.OrderItems().Update(ctx, item); err != nil {
				return err
			}
		}
	}

	var removed []int64
	for itemID := range persisted {
		if !keep[itemID] {
			removed = append(removed, itemID)
		}
	}
	if err := tx.OrderItems().Delete(ctx, removed...); err != nil {
		return err
	}

	return tx.OrderItems().Create(ctx, created...)
}

// Delete remove o pedido e seus itens. Pedidos pagos não podem ser removidos.
func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := s.tracer.Start(ctx, "order.Delete", trace.WithAttributes(attribute.Int64("pedido.id", id)))
	defer func() { endSpan(span, err) }()

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		order, err := tx.Orders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order.Pagamento != nil {
			return apperrors.Conflict("O pedido possui pagamento registrado", nil)
		}

		if err := tx.OrderItems().DeleteByOrder(ctx, id); err != nil {
			return err
		}
		return tx.Orders().Delete(ctx, id)
	})
	if err != nil {
		return common.MapError(err, resource)
	}

	s.logger.Info("Pedido removido", zap.Int64("id", id))
	s.publish(ctx, event.New(event.OrderDeleted, id, nil))
	return nil
}

// DeleteItem remove um item, desde que ele pertença ao pedido informado
func (s *Service) DeleteItem(ctx context.Context, orderID, itemID int64) error {
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Orders().GetByID(ctx, orderID); err != nil {
			return err
		}

		item, err := tx.OrderItems().GetByID(ctx, itemID)
		if err != nil || item.PedidoID != orderID {
			if err == nil || common.IsNotFound(err) {
				return apperrors.NotFoundf("Item %d não encontrado no pedido %d", itemID, orderID)
			}
			return err
		}

		return tx.OrderItems().Delete(ctx, itemID)
	})
	if err != nil {
		return common.MapError(err, resource)
	}

	s.logger.Info("Item removido do pedido", zap.Int64("pedido_id", orderID), zap.Int64("item_id", itemID))
	s.publishUpdated(ctx, orderID)
	return nil
}

func (s *Service) ListItems(ctx context.Context) ([]model.OrderItem, error) {
	items, err := s.store.OrderItems().List(ctx)
	return items, common.MapError(err, itemResource)
}

func (s *Service) GetItem(ctx context.Context, id int64) (*model.OrderItem, error) {
	item, err := s.store.OrderItems().GetByID(ctx, id)
	if err != nil {
		return nil, common.MapError(err, itemResource)
	}
	return item, nil
}

// AddItem inclui um item num pedido em aberto com o preço atual do produto
func (s *Service) AddItem(ctx context.Context, req model.OrderItemCreate) (*model.OrderItem, error) {
	if req.Quantidade <= 0 {
		return nil, apperrors.Validation(invalidQuantity, nil)
	}

	var item *model.OrderItem
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		order, err := tx.Orders().GetByID(ctx, req.PedidoID)
		if err != nil || order.Status != model.OrderStatusOpen {
			if err == nil || common.IsNotFound(err) {
				return apperrors.NotFoundf("Pedido aberto %d não encontrado", req.PedidoID)
			}
			return err
		}

		item, err = newItem(ctx, tx, order.ID, req.ProdutoID, req.Quantidade)
		if err != nil {
			return err
		}
		if err := tx.OrderItems().Create(ctx, item); err != nil {
			return err
		}

		item, err = tx.OrderItems().GetByID(ctx, item.ID)
		return err
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	s.publishUpdated(ctx, item.PedidoID)
	return item, nil
}

// UpdateItemQuantity altera apenas a quantidade; zero ou negativo é rejeitado
// e o item permanece como estava
func (s *Service) UpdateItemQuantity(ctx context.Context, id int64, req model.OrderItemQuantity) (*model.OrderItem, error) {
	if req.Quantidade <= 0 {
		return nil, apperrors.Validation(invalidQuantity, nil)
	}

	var item *model.OrderItem
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		var err error
		item, err = tx.OrderItems().GetByID(ctx, id)
		if err != nil {
			return err
		}

		item.Quantidade = req.Quantidade
		if err := tx.OrderItems().Update(ctx, item); err != nil {
			return err
		}
		item.ComputeSubtotal()
		return nil
	})
	if err != nil {
		return nil, common.MapError(err, itemResource)
	}

	s.publishUpdated(ctx, item.PedidoID)
	return item, nil
}

func (s *Service) RemoveItem(ctx context.Context, id int64) error {
	var orderID int64
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		item, err := tx.OrderItems().GetByID(ctx, id)
		if err != nil {
			return err
		}
		orderID = item.PedidoID
		return tx.OrderItems().Delete(ctx, id)
	})
	if err != nil {
		return common.MapError(err, itemResource)
	}

	s.publishUpdated(ctx, orderID)
	return nil
}

// publishUpdated recarrega o pedido e publica pedido.atualizado
func (s *Service) publishUpdated(ctx context.Context, orderID int64) {
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		s.logger.Warn("Falha ao recarregar pedido para evento", zap.Int64("pedido_id", orderID), zap.Error(err))
		return
	}
	s.publish(ctx, event.New(event.OrderUpdated, orderID, order))
}

// publish nunca falha a operação: o commit já aconteceu
func (s *Service) publish(ctx context.Context, evt event.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.metrics.EventPublishFailed(string(evt.Type))
		s.logger.Error("Falha ao publicar evento",
			zap.String("tipo", string(evt.Type)),
			zap.Int64("pedido_id", evt.OrderID),
			zap.Error(err))
	}
}

func newItem(ctx context.Context, tx repository.Store, orderID, productID int64, quantity int) (*model.OrderItem, error) {
	product, err := tx.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, common.MapError(err, "Produto")
	}
	return &model.OrderItem{
		PedidoID:      orderID,
		ProdutoID:     product.ID,
		Quantidade:    quantity,
		PrecoUnitario: product.Preco,
	}, nil
}

func checkHeader(ctx context.Context, tx repository.Store, clienteID, mesaID int64) error {
	if _, err := tx.Clients().GetByID(ctx, clienteID); err != nil {
		return common.MapError(err, "Cliente")
	}
	if _, err := tx.Tables().GetByID(ctx, mesaID); err != nil {
		return common.MapError(err, "Mesa")
	}
	return nil
}

func ensureNoOpenOrder(ctx context.Context, tx repository.Store, mesaID int64) error {
	_, err := tx.Orders().FindOpenByTable(ctx, mesaID)
	switch {
	case err == nil:
		return apperrors.Conflict("Já existe um pedido aberto para esta mesa", nil)
	case common.IsNotFound(err):
		return nil
	default:
		return err
	}
}

func normalizeStatus(status *string, fallback string) (string, error) {
	if status == nil {
		return fallback, nil
	}
	s := strings.TrimSpace(*status)
	if s == "" {
		return fallback, nil
	}
	if len(s) > model.MaxOrderStatusLen {
		return "", apperrors.Validation("Status do pedido muito longo", nil)
	}
	return s, nil
}

// mapWriteError reporta violações de unicidade ou integridade como conflito
func mapWriteError(err error) error {
	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, repository.ErrDuplicate) || errors.Is(err, repository.ErrReferenced) {
		return apperrors.Conflict("Violação de integridade ao gravar o pedido", err)
	}
	return common.MapError(err, resource)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
