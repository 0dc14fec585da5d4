// models/data.go
package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LayoutData é o formato de data trafegado pela API.
const LayoutData = "2006-01-02"

// Data é uma data de calendário, sem hora, sempre guardada como meia-noite UTC.
type Data struct {
	time.Time
}

// NovaData monta uma data a partir de ano, mês e dia.
func NovaData(ano int, mes time.Month, dia int) Data {
	return Data{time.Date(ano, mes, dia, 0, 0, 0, 0, time.UTC)}
}

// DataDe descarta a hora de t, preservando o dia do calendário no fuso de t.
func DataDe(t time.Time) Data {
	return NovaData(t.Year(), t.Month(), t.Day())
}

// ParseData aceita "YYYY-MM-DD" ou um timestamp RFC3339.
func ParseData(s string) (Data, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(LayoutData, s); err == nil {
		return DataDe(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Data{}, fmt.Errorf("data inválida %q: use YYYY-MM-DD", s)
	}
	return DataDe(t), nil
}

// DiasEntre devolve a diferença em dias de calendário a - b.
func DiasEntre(a, b Data) int {
	return int(a.Time.Sub(b.Time).Hours() / 24)
}

func (d Data) AddDias(n int) Data {
	return Data{d.Time.AddDate(0, 0, n)}
}

func (d Data) Antes(o Data) bool  { return d.Time.Before(o.Time) }
func (d Data) Depois(o Data) bool { return d.Time.After(o.Time) }

func (d Data) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(LayoutData)
}

// Formatar usa o padrão brasileiro dd/mm/aaaa.
func (d Data) Formatar() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("02/01/2006")
}

func (d Data) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Data) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Data{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("data deve ser texto: %w", err)
	}
	if s == "" {
		*d = Data{}
		return nil
	}
	p, err := ParseData(s)
	if err != nil {
		return err
	}
	*d = p
	return nil
}

// Value grava a data como DATE no Postgres.
func (d Data) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *Data) Scan(v any) error {
	switch t := v.(type) {
	case nil:
		*d = Data{}
	case time.Time:
		*d = DataDe(t)
	case string:
		p, err := ParseData(t)
		if err != nil {
			return err
		}
		*d = p
	case []byte:
		p, err := ParseData(string(t))
		if err != nil {
			return err
		}
		*d = p
	default:
		return fmt.Errorf("tipo %T não suportado para Data", v)
	}
	return nil
}

// GormDataType faz o AutoMigrate criar a coluna como DATE.
func (Data) GormDataType() string {
	return "date"
}
