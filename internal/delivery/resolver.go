package delivery

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"swiftkart/internal/domain"
)

// ErrInvalidPincode flags a pincode that fails the format or range check.
// User-correctable; no state changes.
var ErrInvalidPincode = errors.New("delivery: invalid pincode")

var rePincode = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// Resolver maps a pincode to the providers serving it and computes each
// provider's delivery estimate. Cutoffs still in the future are registered
// with the ticker so the UI can count them down.
type Resolver struct {
	cfg    *Config
	ticker *Ticker
	now    func() time.Time
}

func NewResolver(cfg *Config, ticker *Ticker) *Resolver {
	return &Resolver{cfg: cfg, ticker: ticker, now: time.Now}
}

// Resolve checks pincode eligibility and builds per-provider estimates.
// products lets the message reflect stock: same-day only applies to items
// that are actually in stock.
func (r *Resolver) Resolve(pincode string, products []domain.Product) (domain.DeliveryResult, error) {
	if !rePincode.MatchString(pincode) {
		return domain.DeliveryResult{}, ErrInvalidPincode
	}
	n, _ := strconv.Atoi(pincode)
	if n < r.cfg.PinRange.Min || n > r.cfg.PinRange.Max {
		return domain.DeliveryResult{}, ErrInvalidPincode
	}

	names, ok := r.cfg.Directory[pincode]
	if !ok || len(names) == 0 {
		return domain.DeliveryResult{Pincode: pincode, Available: false}, nil
	}

	// Same-day only makes sense for items that can ship today. With no
	// products given the check is about the area alone, so stock passes.
	inStock := true
	for _, p := range products {
		if !p.InStock {
			inStock = false
			break
		}
	}

	now := r.now()
	res := domain.DeliveryResult{Pincode: pincode, Available: true}
	for _, name := range names {
		pol, ok := r.cfg.policy(name)
		if !ok {
			// Directory names a provider with no policy entry; skip it
			// rather than failing the whole lookup.
			continue
		}
		est, err := r.estimate(pol, now, inStock)
		if err != nil {
			return domain.DeliveryResult{}, err
		}
		res.Options = append(res.Options, est)
	}
	return res, nil
}

func (r *Resolver) estimate(pol Policy, now time.Time, inStock bool) (domain.Estimate, error) {
	if !pol.HasCutoff() {
		est := pol.Estimate
		if est == "" {
			est = "2-5 business days"
		}
		return domain.Estimate{Provider: pol.Name, Message: fmt.Sprintf("delivery by %s in %s", pol.Name, est)}, nil
	}

	cutoff, err := pol.CutoffToday(now)
	if err != nil {
		return domain.Estimate{}, err
	}
	if now.Before(cutoff) && inStock {
		est := domain.Estimate{
			Provider: pol.Name,
			Message:  fmt.Sprintf("same-day delivery by %s if ordered before %s (and in stock)", pol.Name, pol.Cutoff),
			Cutoff:   &cutoff,
		}
		if r.ticker != nil {
			est.TimerID = r.ticker.Register(pol.Name, cutoff)
		}
		return est, nil
	}
	return domain.Estimate{Provider: pol.Name, Message: fmt.Sprintf("next-day delivery by %s", pol.Name)}, nil
}
