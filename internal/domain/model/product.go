package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product é um item do cardápio
type Product struct {
	ID            int64           `gorm:"column:idproduto;primaryKey;autoIncrement" json:"idproduto"`
	Descricao     string          `gorm:"column:descricao;size:200;not null;uniqueIndex" json:"descricao"`
	Preco         decimal.Decimal `gorm:"column:preco;type:numeric(10,2);not null" json:"preco"`
	Categoria     *string         `gorm:"column:categoria;size:50" json:"categoria"`
	Status        bool            `gorm:"column:status;not null" json:"status"`
	DataCriacao   time.Time       `gorm:"column:data_criacao;autoCreateTime" json:"data_criacao"`
	DataAlteracao time.Time       `gorm:"column:data_alteracao;autoUpdateTime" json:"data_alteracao"`
}

func (Product) TableName() string {
	return "produtos"
}

// ProductCreate é o corpo de POST /produtos
type ProductCreate struct {
	Descricao string           `json:"descricao" binding:"required"`
	Preco     *decimal.Decimal `json:"preco" binding:"required"`
	Categoria *string          `json:"categoria"`
	Status    *bool            `json:"status"`
}

// ToProduct cria a entidade; produtos nascem ativos salvo indicação contrária
func (p ProductCreate) ToProduct() *Product {
	status := true
	if p.Status != nil {
		status = *p.Status
	}
	var preco decimal.Decimal
	if p.Preco != nil {
		preco = *p.Preco
	}
	return &Product{
		Descricao: strings.TrimSpace(p.Descricao),
		Preco:     preco,
		Categoria: normalizeOptional(p.Categoria),
		Status:    status,
	}
}

// ProductPatch é o corpo de PATCH /produtos/:id; apenas campos presentes são aplicados
type ProductPatch struct {
	Descricao *string          `json:"descricao"`
	Preco     *decimal.Decimal `json:"preco"`
	Categoria *string          `json:"categoria"`
	Status    *bool            `json:"status"`
}

func (p ProductPatch) Apply(product *Product) {
	if p.Descricao != nil {
		product.Descricao = strings.TrimSpace(*p.Descricao)
	}
	if p.Preco != nil {
		product.Preco = *p.Preco
	}
	if p.Categoria != nil {
		product.Categoria = normalizeOptional(p.Categoria)
	}
	if p.Status != nil {
		product.Status = *p.Status
	}
}

// ProductFilter são os filtros de GET /produtos
type ProductFilter struct {
	Descricao string `form:"descricao"`
	Categoria string `form:"categoria"`
	Status    string `form:"status"`
}
