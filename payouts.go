package driftpay

import (
	"context"
	"net/http"
	"net/url"
)

type PayoutStatus string

const (
	PayoutStatusPending PayoutStatus = "pending"
	PayoutStatusPaid    PayoutStatus = "paid"
	PayoutStatusBounced PayoutStatus = "bounced"
)

// Payout is a transfer of collected funds to a creditor's bank account.
// Payouts are created by the API, so the service is read-only.
type Payout struct {
	ID           string            `json:"id"`
	CreatedAt    string            `json:"created_at"`
	Amount       int64             `json:"amount"`
	ArrivalDate  string            `json:"arrival_date,omitempty"`
	Currency     string            `json:"currency,omitempty"`
	DeductedFees int64             `json:"deducted_fees"`
	PayoutType   string            `json:"payout_type,omitempty"`
	Reference    string            `json:"reference,omitempty"`
	Status       PayoutStatus      `json:"status,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Links        PayoutLinks       `json:"links"`
}

type PayoutLinks struct {
	Creditor            string `json:"creditor,omitempty"`
	CreditorBankAccount string `json:"creditor_bank_account,omitempty"`
}

type PayoutListParams struct {
	ListParams
	Creditor   string
	Currency   string
	PayoutType string
	Status     PayoutStatus
}

func (p PayoutListParams) values() url.Values {
	v := p.ListParams.values()
	if p.Creditor != "" {
		v.Set("creditor", p.Creditor)
	}
	if p.Currency != "" {
		v.Set("currency", p.Currency)
	}
	if p.PayoutType != "" {
		v.Set("payout_type", p.PayoutType)
	}
	if p.Status != "" {
		v.Set("status", string(p.Status))
	}
	return v
}

type PayoutList struct {
	Payouts []Payout
	Meta    ListMeta
}

type PayoutsService interface {
	Get(ctx context.Context, id string) (*Payout, error)
	List(ctx context.Context, params PayoutListParams) (*PayoutList, error)
	All(params PayoutListParams) *Iterator[Payout]
}

type payoutsService struct {
	client *Client
}

type payoutEnvelope struct {
	errorEnvelope
	Payout *Payout `json:"payouts"`
}

type payoutListEnvelope struct {
	errorEnvelope
	Payouts []Payout `json:"payouts"`
	Meta    ListMeta `json:"meta"`
}

func (s *payoutsService) Get(ctx context.Context, id string) (*Payout, error) {
	env := payoutEnvelope{}
	err := s.client.do(ctx, http.MethodGet, s.client.url("/payouts/%s", id), nil, &env)
	if err != nil {
		return nil, err
	}
	return env.Payout, nil
}

func (s *payoutsService) List(ctx context.Context, params PayoutListParams) (*PayoutList, error) {
	env := payoutListEnvelope{}
	requestUrl := withQuery(s.client.url("/payouts"), params.values())
	err := s.client.do(ctx, http.MethodGet, requestUrl, nil, &env)
	if err != nil {
		return nil, err
	}
	return &PayoutList{Payouts: env.Payouts, Meta: env.Meta}, nil
}

func (s *payoutsService) All(params PayoutListParams) *Iterator[Payout] {
	return newIterator(params.After, func(ctx context.Context, after string) ([]Payout, ListMeta, error) {
		p := params
		p.After = after
		p.Before = ""
		list, err := s.List(ctx, p)
		if err != nil {
			return nil, ListMeta{}, err
		}
		return list.Payouts, list.Meta, nil
	})
}
