package model

import (
	"strings"
	"time"
)

// Client é um cliente do restaurante. Desativar não remove o registro.
type Client struct {
	ID            int64     `gorm:"column:idcliente;primaryKey;autoIncrement" json:"idcliente"`
	Nome          string    `gorm:"column:nome;size:100;not null" json:"nome"`
	Apelido       *string   `gorm:"column:apelido;size:50" json:"apelido"`
	Email         *string   `gorm:"column:email;size:100;uniqueIndex" json:"email"`
	Telefone      *string   `gorm:"column:telefone;size:20" json:"telefone"`
	Cidade        *string   `gorm:"column:cidade;size:100" json:"cidade"`
	IsActive      bool      `gorm:"column:is_active;not null" json:"is_active"`
	DataCriacao   time.Time `gorm:"column:data_criacao;autoCreateTime" json:"data_criacao"`
	DataAlteracao time.Time `gorm:"column:data_alteracao;autoUpdateTime" json:"data_alteracao"`
}

func (Client) TableName() string {
	return "clientes"
}

type ClientCreate struct {
	Nome     string  `json:"nome" binding:"required"`
	Apelido  *string `json:"apelido"`
	Email    *string `json:"email"`
	Telefone *string `json:"telefone"`
	Cidade   *string `json:"cidade"`
}

// ToClient cria a entidade ativa; email vazio é gravado como NULL para não
// colidir no índice único.
func (c ClientCreate) ToClient() *Client {
	return &Client{
		Nome:     strings.TrimSpace(c.Nome),
		Apelido:  normalizeOptional(c.Apelido),
		Email:    normalizeOptional(c.Email),
		Telefone: normalizeOptional(c.Telefone),
		Cidade:   normalizeOptional(c.Cidade),
		IsActive: true,
	}
}

type ClientPatch struct {
	Nome     *string `json:"nome"`
	Apelido  *string `json:"apelido"`
	Email    *string `json:"email"`
	Telefone *string `json:"telefone"`
	Cidade   *string `json:"cidade"`
	IsActive *bool   `json:"is_active"`
}

func (p ClientPatch) Apply(client *Client) {
	if p.Nome != nil {
		client.Nome = strings.TrimSpace(*p.Nome)
	}
	if p.Apelido != nil {
		client.Apelido = normalizeOptional(p.Apelido)
	}
	if p.Email != nil {
		client.Email = normalizeOptional(p.Email)
	}
	if p.Telefone != nil {
		client.Telefone = normalizeOptional(p.Telefone)
	}
	if p.Cidade != nil {
		client.Cidade = normalizeOptional(p.Cidade)
	}
	if p.IsActive != nil {
		client.IsActive = *p.IsActive
	}
}

// ClientFilter são os filtros de GET /clientes. Status vazio equivale a "ativos".
type ClientFilter struct {
	Nome     string `form:"nome"`
	Apelido  string `form:"apelido"`
	Cidade   string `form:"cidade"`
	Telefone string `form:"telefone"`
	Status   string `form:"status"`
}
