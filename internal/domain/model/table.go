package model

import "time"

// TableStatus é a situação de ocupação de uma mesa (Livre, Ocupada, ...)
type TableStatus struct {
	ID        int64  `gorm:"column:id_situacao;primaryKey;autoIncrement" json:"id_situacao"`
	Descricao string `gorm:"column:situacao_descricao;size:50;not null;uniqueIndex" json:"situacao_descricao"`
}

func (TableStatus) TableName() string {
	return "situacao_mesa"
}

type TableStatusCreate struct {
	Descricao string `json:"situacao_descricao" binding:"required"`
}

// Table é uma mesa física do restaurante
type Table struct {
	ID            int64        `gorm:"column:idmesa;primaryKey;autoIncrement" json:"idmesa"`
	Numero        int          `gorm:"column:numero;not null;uniqueIndex" json:"numero"`
	SituacaoID    int64        `gorm:"column:id_situacao_fk;not null;index" json:"id_situacao_fk"`
	ClienteID     *int64       `gorm:"column:id_cliente_fk;index" json:"id_cliente_fk"`
	Situacao      *TableStatus `gorm:"foreignKey:SituacaoID" json:"situacao,omitempty"`
	Cliente       *Client      `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	DataCriacao   time.Time    `gorm:"column:data_criacao;autoCreateTime" json:"data_criacao"`
	DataAlteracao time.Time    `gorm:"column:data_alteracao;autoUpdateTime" json:"data_alteracao"`
}

func (Table) TableName() string {
	return "mesas"
}

type TableCreate struct {
	Numero     int    `json:"numero" binding:"required"`
	SituacaoID int64  `json:"id_situacao_fk" binding:"required"`
	ClienteID  *int64 `json:"id_cliente_fk"`
}

func (t TableCreate) ToTable() *Table {
	table := &Table{
		Numero:     t.Numero,
		SituacaoID: t.SituacaoID,
	}
	if t.ClienteID != nil && *t.ClienteID != 0 {
		id := *t.ClienteID
		table.ClienteID = &id
	}
	return table
}

// TablePatch é o corpo de PUT /mesas/:id. id_cliente_fk igual a 0 desvincula o cliente.
type TablePatch struct {
	Numero     *int   `json:"numero"`
	SituacaoID *int64 `json:"id_situacao_fk"`
	ClienteID  *int64 `json:"id_cliente_fk"`
}

func (p TablePatch) Apply(table *Table) {
	if p.Numero != nil {
		table.Numero = *p.Numero
	}
	if p.SituacaoID != nil {
		table.SituacaoID = *p.SituacaoID
		table.Situacao = nil
	}
	if p.ClienteID != nil {
		if *p.ClienteID == 0 {
			table.ClienteID = nil
		} else {
			id := *p.ClienteID
			table.ClienteID = &id
		}
		table.Cliente = nil
	}
}
