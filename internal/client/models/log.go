package models

import (
	"encoding/json"
	"fmt"
)

// ProductRef is the polymorphic product field of a log entry: the backend
// returns either a bare product id or a populated product document.
type ProductRef struct {
	ID      string
	Product *Product
}

func (p *ProductRef) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &p.ID)
	}
	var prod Product
	if err := json.Unmarshal(b, &prod); err != nil {
		return err
	}
	p.Product = &prod
	p.ID = prod.ID
	return nil
}

func (p ProductRef) MarshalJSON() ([]byte, error) {
	if p.Product != nil {
		return json.Marshal(p.Product)
	}
	if p.ID != "" {
		return json.Marshal(p.ID)
	}
	return []byte("null"), nil
}

// IsZero reports whether the entry references no product, i.e. it records a
// discard or another points movement rather than a redemption.
func (p ProductRef) IsZero() bool {
	return p.ID == "" && p.Product == nil
}

// LogEntry is one points-affecting transaction from the /log endpoints.
// Negative Points means a redemption.
type LogEntry struct {
	ID               string     `json:"_id"`
	User             string     `json:"user"`
	Points           int        `json:"points"`
	Product          ProductRef `json:"product,omitempty"`
	PlasticDiscarded int        `json:"plasticDiscarted,omitempty"`
	MetalDiscarded   int        `json:"metalDiscarted,omitempty"`
	Code             string     `json:"code,omitempty"`
	Redeemed         *bool      `json:"redeemed,omitempty"`
	ActivityDate     string     `json:"activityDate"`
}

// LogRequest is the body of POST /log. Redemptions send the product id and
// the negated product price.
type LogRequest struct {
	User    string `json:"user"`
	Product string `json:"product"`
	Points  int    `json:"points"`
}

// Description renders the human summary of a transaction. names maps product
// ids to display names for entries whose product was not populated.
func (l LogEntry) Description(names map[string]string) string {
	switch {
	case !l.Product.IsZero():
		if l.Product.Product != nil && l.Product.Product.Name != "" {
			return fmt.Sprintf("Redemption: %s", l.Product.Product.Name)
		}
		if name, ok := names[l.Product.ID]; ok {
			return fmt.Sprintf("Redemption: %s", name)
		}
		return "Product redemption"
	case l.PlasticDiscarded > 0:
		return fmt.Sprintf("Discarded %d plastic items", l.PlasticDiscarded)
	case l.MetalDiscarded > 0:
		return fmt.Sprintf("Discarded %d metal items", l.MetalDiscarded)
	case l.Points > 0:
		return "Points credit"
	default:
		return "Points debit"
	}
}
