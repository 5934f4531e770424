package domain

import "time"

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description,omitempty"`
	InStock     bool    `json:"inStock"`
}

// StockRecord is one row of the external stock feed. Available carries the
// feed's raw "TRUE"/"FALSE" string; anything but "TRUE" counts as unavailable.
type StockRecord struct {
	ProductID string `json:"product_id"`
	Available string `json:"available"`
}

func (s StockRecord) InStock() bool { return s.Available == "TRUE" }

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Estimate is one provider's answer for a pincode.
type Estimate struct {
	Provider string     `json:"provider"`
	Message  string     `json:"message"`
	Cutoff   *time.Time `json:"cutoff,omitempty"`
	TimerID  string     `json:"timerId,omitempty"`
}

// DeliveryResult wraps the estimates for one pincode check. Available is false
// when the pincode is well-formed but no provider serves it.
type DeliveryResult struct {
	Pincode   string     `json:"pincode"`
	Available bool       `json:"available"`
	Options   []Estimate `json:"options,omitempty"`
}

type Remaining struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Countdown is the live view of one registered cutoff timer.
type Countdown struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	Cutoff    time.Time `json:"cutoff"`
	Remaining Remaining `json:"remaining"`
}
