package driftpay

import (
	"context"
	"net/http"
	"net/url"
)

// Refund returns collected money to the customer's bank account.
type Refund struct {
	ID        string            `json:"id"`
	CreatedAt string            `json:"created_at"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency,omitempty"`
	Reference string            `json:"reference,omitempty"`
	Status    string            `json:"status,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Links     RefundLinks       `json:"links"`
}

type RefundLinks struct {
	Payment string `json:"payment,omitempty"`
	Mandate string `json:"mandate,omitempty"`
}

type RefundCreateParams struct {
	Amount    int64             `json:"amount"`
	Reference string            `json:"reference,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Links     RefundCreateLinks `json:"links"`
	// TotalAmountConfirmation must equal the sum of all refunds on the
	// payment including this one. A safeguard against double refunding; a
	// mismatch fails with validation_failed.
	TotalAmountConfirmation int64 `json:"total_amount_confirmation,omitempty"`
}

type RefundCreateLinks struct {
	Payment string `json:"payment,omitempty"`
	Mandate string `json:"mandate,omitempty"`
}

type RefundUpdateParams struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

type RefundListParams struct {
	ListParams
	Payment string
	Mandate string
	// RefundType is payment or mandate.
	RefundType string
}

func (p RefundListParams) values() url.Values {
	v := p.ListParams.values()
	if p.Payment != "" {
		v.Set("payment", p.Payment)
	}
	if p.Mandate != "" {
		v.Set("mandate", p.Mandate)
	}
	if p.RefundType != "" {
		v.Set("refund_type", p.RefundType)
	}
	return v
}

type RefundList struct {
	Refunds []Refund
	Meta    ListMeta
}

type RefundsService interface {
	Create(ctx context.Context, params RefundCreateParams, opts ...RequestOption) (*Refund, error)
	Get(ctx context.Context, id string) (*Refund, error)
	Update(ctx context.Context, id string, params RefundUpdateParams) (*Refund, error)
	List(ctx context.Context, params RefundListParams) (*RefundList, error)
	All(params RefundListParams) *Iterator[Refund]
}

type refundsService struct {
	client *Client
}

type refundEnvelope struct {
	errorEnvelope
	Refund *Refund `json:"refunds"`
}

type refundListEnvelope struct {
	errorEnvelope
	Refunds []Refund `json:"refunds"`
	Meta    ListMeta `json:"meta"`
}

type refundCreateRequest struct {
	Refunds RefundCreateParams `json:"refunds"`
}

type refundUpdateRequest struct {
	Refunds RefundUpdateParams `json:"refunds"`
}

func (s *refundsService) Create(ctx context.Context, params RefundCreateParams, opts ...RequestOption) (*Refund, error) {
	env := refundEnvelope{}
	err := s.client.post(ctx, s.client.url("/refunds"), refundCreateRequest{Refunds: params}, &env, opts...)
	if err != nil {
		if IsIdempotentCreationConflict(err) {
			if id := ConflictingResourceID(err); id != "" {
				return s.Get(ctx, id)
			}
		}
		return nil, err
	}
	return env.Refund, nil
}

func (s *refundsService) Get(ctx context.Context, id string) (*Refund, error) {
	env := refundEnvelope{}
	err := s.client.do(ctx, http.MethodGet, s.client.url("/refunds/%s", id), nil, &env)
	if err != nil {
		return nil, err
	}
	return env.Refund, nil
}

func (s *refundsService) Update(ctx context.Context, id string, params RefundUpdateParams) (*Refund, error) {
	env := refundEnvelope{}
	err := s.client.do(ctx, http.MethodPut, s.client.url("/refunds/%s", id), refundUpdateRequest{Refunds: params}, &env)
	if err != nil {
		return nil, err
	}
	return env.Refund, nil
}

func (s *refundsService) List(ctx context.Context, params RefundListParams) (*RefundList, error) {
	env := refundListEnvelope{}
	requestUrl := withQuery(s.client.url("/refunds"), params.values())
	err := s.client.do(ctx, http.MethodGet, requestUrl, nil, &env)
	if err != nil {
		return nil, err
	}
	return &RefundList{Refunds: env.Refunds, Meta: env.Meta}, nil
}

func (s *refundsService) All(params RefundListParams) *Iterator[Refund] {
	return newIterator(params.After, func(ctx context.Context, after string) ([]Refund, ListMeta, error) {
		p := params
		p.After = after
		p.Before = ""
		list, err := s.List(ctx, p)
		if err != nil {
			return nil, ListMeta{}, err
		}
		return list.Refunds, list.Meta, nil
	})
}
