package products

import (
	"bytes"
	"encoding/json"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/classifier"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/digest"
)

// Product is one catalogue record. Identity fields, hashes and the prediction
// are fixed when the pipeline creates the record; TrackingHistory is the only
// field the catalogue service mutates.
type Product struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Color           string            `json:"color"`
	Price           float64           `json:"price"`
	Year            int               `json:"year"`
	MetaHash        string            `json:"meta_hash"`
	PIDHash         string            `json:"pid_hash"`
	ShortHash       string            `json:"short_hash"`
	PredictedStatus classifier.Status `json:"predicted_status"`
	PredProba       float64           `json:"pred_proba"`
	QRFile          *string           `json:"qr_file"`
	TrackingURL     *string           `json:"tracking_url"`
	ImageFile       *string           `json:"image_file"`
	TrackingHistory []TrackingEvent   `json:"tracking_history"`
}

// Fields returns the hashed subset of p.
func (p *Product) Fields() digest.Fields {
	return digest.Fields{
		ID:    p.ID,
		Name:  p.Name,
		Color: p.Color,
		Price: p.Price,
		Year:  p.Year,
	}
}

// Normalize guarantees TrackingHistory serializes as an array.
func (p *Product) Normalize() {
	if p.TrackingHistory == nil {
		p.TrackingHistory = []TrackingEvent{}
	}
}

// TrackingEvent is one supply-chain checkpoint, held as the compact JSON
// object the caller sent. The documented keys are step, location and
// timestamp; any other keys and value types are stored and returned as-is.
type TrackingEvent json.RawMessage

// NewTrackingEvent builds an event with the documented keys.
func NewTrackingEvent(step, location, timestamp string) TrackingEvent {
	b, _ := json.Marshal(map[string]string{
		"step":      step,
		"location":  location,
		"timestamp": timestamp,
	})
	return TrackingEvent(b)
}

// MarshalJSON writes the stored object unchanged.
func (e TrackingEvent) MarshalJSON() ([]byte, error) {
	if len(e) == 0 {
		return []byte("null"), nil
	}
	return e, nil
}

// UnmarshalJSON keeps a compacted copy of any JSON value. Non-object values
// are rejected by the repository, not here, so the caller gets a precise error.
func (e *TrackingEvent) UnmarshalJSON(b []byte) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return err
	}
	*e = TrackingEvent(buf.Bytes())
	return nil
}

// Object reports whether e holds a JSON object.
func (e TrackingEvent) Object() bool {
	return len(e) > 0 && e[0] == '{'
}

// TrackingUpdate is the body accepted when replacing a product's history.
type TrackingUpdate struct {
	TrackingHistory *[]TrackingEvent `json:"tracking_history"`
}

// TrackingResult is returned after a successful history replacement.
type TrackingResult struct {
	Status          string          `json:"status"`
	TrackingHistory []TrackingEvent `json:"tracking_history"`
}

// LedgerEntry anchors a product's meta hash in the side ledger.
type LedgerEntry struct {
	ProductID   string `json:"product_id"`
	ProductHash string `json:"product_hash"`
}

// Verification compares a record's stored hash against a fresh digest and
// the ledger entry for the same id.
type Verification struct {
	ID           string  `json:"id"`
	MetaHash     string  `json:"meta_hash"`
	ComputedHash string  `json:"computed_hash"`
	LedgerHash   *string `json:"ledger_hash"`
	Consistent   bool    `json:"consistent"`
}
