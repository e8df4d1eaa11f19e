package driftpay

import (
	"context"
	"net/http"
	"net/url"
)

type PaymentStatus string

const (
	PaymentStatusPendingCustomerApproval PaymentStatus = "pending_customer_approval"
	PaymentStatusPendingSubmission       PaymentStatus = "pending_submission"
	PaymentStatusSubmitted               PaymentStatus = "submitted"
	PaymentStatusConfirmed               PaymentStatus = "confirmed"
	PaymentStatusPaidOut                 PaymentStatus = "paid_out"
	PaymentStatusCancelled               PaymentStatus = "cancelled"
	PaymentStatusCustomerApprovalDenied  PaymentStatus = "customer_approval_denied"
	PaymentStatusFailed                  PaymentStatus = "failed"
	PaymentStatusChargedBack             PaymentStatus = "charged_back"
)

// Payment is a single debit against a mandate. Amounts are in the smallest
// denomination of the currency (pence, cents, öre).
type Payment struct {
	ID             string            `json:"id"`
	CreatedAt      string            `json:"created_at"`
	Amount         int64             `json:"amount"`
	AmountRefunded int64             `json:"amount_refunded"`
	ChargeDate     string            `json:"charge_date,omitempty"`
	Currency       string            `json:"currency,omitempty"`
	Description    string            `json:"description,omitempty"`
	Reference      string            `json:"reference,omitempty"`
	Status         PaymentStatus     `json:"status,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	Links          PaymentLinks      `json:"links"`
}

type PaymentLinks struct {
	Creditor           string `json:"creditor,omitempty"`
	Mandate            string `json:"mandate,omitempty"`
	Payout             string `json:"payout,omitempty"`
	Subscription       string `json:"subscription,omitempty"`
	InstalmentSchedule string `json:"instalment_schedule,omitempty"`
}

type PaymentCreateParams struct {
	Amount int64 `json:"amount"`
	// AppFee is retained by the partner taking the payment, in the smallest
	// denomination.
	AppFee int64 `json:"app_fee,omitempty"`
	// ChargeDate is the earliest date to collect on, ISO 8601. Defaults to
	// the mandate's next possible charge date.
	ChargeDate  string             `json:"charge_date,omitempty"`
	Currency    string             `json:"currency"`
	Description string             `json:"description,omitempty"`
	Reference   string             `json:"reference,omitempty"`
	Metadata    map[string]string  `json:"metadata,omitempty"`
	Links       PaymentCreateLinks `json:"links"`
}

type PaymentCreateLinks struct {
	Mandate string `json:"mandate"`
}

type PaymentUpdateParams struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

type PaymentCancelParams struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

type PaymentRetryParams struct {
	// ChargeDate for the retry attempt. Defaults to as soon as possible.
	ChargeDate string            `json:"charge_date,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type PaymentListParams struct {
	ListParams
	Creditor     string
	Currency     string
	Customer     string
	Mandate      string
	Subscription string
	Status       PaymentStatus
	// ChargeDate filters on collection date, ISO 8601.
	ChargeDate CreatedAtFilter
}

func (p PaymentListParams) values() url.Values {
	v := p.ListParams.values()
	if p.Creditor != "" {
		v.Set("creditor", p.Creditor)
	}
	if p.Currency != "" {
		v.Set("currency", p.Currency)
	}
	if p.Customer != "" {
		v.Set("customer", p.Customer)
	}
	if p.Mandate != "" {
		v.Set("mandate", p.Mandate)
	}
	if p.Subscription != "" {
		v.Set("subscription", p.Subscription)
	}
	if p.Status != "" {
		v.Set("status", string(p.Status))
	}
	if p.ChargeDate.Gt != "" {
		v.Set("charge_date[gt]", p.ChargeDate.Gt)
	}
	if p.ChargeDate.Gte != "" {
		v.Set("charge_date[gte]", p.ChargeDate.Gte)
	}
	if p.ChargeDate.Lt != "" {
		v.Set("charge_date[lt]", p.ChargeDate.Lt)
	}
	if p.ChargeDate.Lte != "" {
		v.Set("charge_date[lte]", p.ChargeDate.Lte)
	}
	return v
}

type PaymentList struct {
	Payments []Payment
	Meta     ListMeta
}

type PaymentsService interface {
	Create(ctx context.Context, params PaymentCreateParams, opts ...RequestOption) (*Payment, error)
	Get(ctx context.Context, id string) (*Payment, error)
	Update(ctx context.Context, id string, params PaymentUpdateParams) (*Payment, error)
	List(ctx context.Context, params PaymentListParams) (*PaymentList, error)
	All(params PaymentListParams) *Iterator[Payment]

	// Cancel a payment that has not been submitted to the banks yet.
	// Submitted payments fail with invalid_state.
	Cancel(ctx context.Context, id string, params PaymentCancelParams, opts ...RequestOption) (*Payment, error)

	// Retry a failed or charged back payment. At most 3 retries per
	// payment are allowed by the API.
	Retry(ctx context.Context, id string, params PaymentRetryParams, opts ...RequestOption) (*Payment, error)
}

type paymentsService struct {
	client *Client
}

type paymentEnvelope struct {
	errorEnvelope
	Payment *Payment `json:"payments"`
}

type paymentListEnvelope struct {
	errorEnvelope
	Payments []Payment `json:"payments"`
	Meta     ListMeta  `json:"meta"`
}

type paymentCreateRequest struct {
	Payments PaymentCreateParams `json:"payments"`
}

type paymentUpdateRequest struct {
	Payments PaymentUpdateParams `json:"payments"`
}

type paymentCancelRequest struct {
	Data PaymentCancelParams `json:"data"`
}

type paymentRetryRequest struct {
	Data PaymentRetryParams `json:"data"`
}

func (s *paymentsService) Create(ctx context.Context, params PaymentCreateParams, opts ...RequestOption) (*Payment, error) {
	env := paymentEnvelope{}
	err := s.client.post(ctx, s.client.url("/payments"), paymentCreateRequest{Payments: params}, &env, opts...)
	if err != nil {
		if IsIdempotentCreationConflict(err) {
			if id := ConflictingResourceID(err); id != "" {
				return s.Get(ctx, id)
			}
		}
		return nil, err
	}
	return env.Payment, nil
}

func (s *paymentsService) Get(ctx context.Context, id string) (*Payment, error) {
	env := paymentEnvelope{}
	err := s.client.do(ctx, http.MethodGet, s.client.url("/payments/%s", id), nil, &env)
	if err != nil {
		return nil, err
	}
	return env.Payment, nil
}

func (s *paymentsService) Update(ctx context.Context, id string, params PaymentUpdateParams) (*Payment, error) {
	env := paymentEnvelope{}
	err := s.client.do(ctx, http.MethodPut, s.client.url("/payments/%s", id), paymentUpdateRequest{Payments: params}, &env)
	if err != nil {
		return nil, err
	}
	return env.Payment, nil
}

func (s *paymentsService) List(ctx context.Context, params PaymentListParams) (*PaymentList, error) {
	env := paymentListEnvelope{}
	requestUrl := withQuery(s.client.url("/payments"), params.values())
	err := s.client.do(ctx, http.MethodGet, requestUrl, nil, &env)
	if err != nil {
		return nil, err
	}
	return &PaymentList{Payments: env.Payments, Meta: env.Meta}, nil
}

func (s *paymentsService) All(params PaymentListParams) *Iterator[Payment] {
	return newIterator(params.After, func(ctx context.Context, after string) ([]Payment, ListMeta, error) {
		p := params
		p.After = after
		p.Before = ""
		list, err := s.List(ctx, p)
		if err != nil {
			return nil, ListMeta{}, err
		}
		return list.Payments, list.Meta, nil
	})
}

func (s *paymentsService) Cancel(ctx context.Context, id string, params PaymentCancelParams, opts ...RequestOption) (*Payment, error) {
	env := paymentEnvelope{}
	err := s.client.post(ctx, s.client.url("/payments/%s/actions/cancel", id), paymentCancelRequest{Data: params}, &env, opts...)
	if err != nil {
		return nil, err
	}
	return env.Payment, nil
}

func (s *paymentsService) Retry(ctx context.Context, id string, params PaymentRetryParams, opts ...RequestOption) (*Payment, error) {
	env := paymentEnvelope{}
	err := s.client.post(ctx, s.client.url("/payments/%s/actions/retry", id), paymentRetryRequest{Data: params}, &env, opts...)
	if err != nil {
		return nil, err
	}
	return env.Payment, nil
}
