package driftpay

import (
	"context"
	"net/http"
	"net/url"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusFinished  SubscriptionStatus = "finished"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
)

// Subscription creates payments against a mandate on a fixed schedule.
type Subscription struct {
	ID               string             `json:"id"`
	CreatedAt        string             `json:"created_at"`
	Amount           int64              `json:"amount"`
	Currency         string             `json:"currency,omitempty"`
	Name             string             `json:"name,omitempty"`
	Status           SubscriptionStatus `json:"status,omitempty"`
	StartDate        string             `json:"start_date,omitempty"`
	EndDate          string             `json:"end_date,omitempty"`
	Interval         int                `json:"interval,omitempty"`
	IntervalUnit     string             `json:"interval_unit,omitempty"`
	DayOfMonth       int                `json:"day_of_month,omitempty"`
	Month            string             `json:"month,omitempty"`
	Count            int                `json:"count,omitempty"`
	PaymentReference string             `json:"payment_reference,omitempty"`
	UpcomingPayments []UpcomingPayment  `json:"upcoming_payments,omitempty"`
	Metadata         map[string]string  `json:"metadata,omitempty"`
	Links            SubscriptionLinks  `json:"links"`
}

type UpcomingPayment struct {
	ChargeDate string `json:"charge_date"`
	Amount     int64  `json:"amount"`
}

type SubscriptionLinks struct {
	Mandate string `json:"mandate,omitempty"`
}

type SubscriptionCreateParams struct {
	Amount int64 `json:"amount"`
	// Count limits the subscription to a fixed number of payments.
	// Mutually exclusive with EndDate.
	Count      int    `json:"count,omitempty"`
	Currency   string `json:"currency"`
	DayOfMonth int    `json:"day_of_month,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
	Interval   int    `json:"interval,omitempty"`
	// IntervalUnit is weekly, monthly or yearly.
	IntervalUnit     string                  `json:"interval_unit"`
	Month            string                  `json:"month,omitempty"`
	Name             string                  `json:"name,omitempty"`
	PaymentReference string                  `json:"payment_reference,omitempty"`
	StartDate        string                  `json:"start_date,omitempty"`
	Metadata         map[string]string       `json:"metadata,omitempty"`
	Links            SubscriptionCreateLinks `json:"links"`
}

type SubscriptionCreateLinks struct {
	Mandate string `json:"mandate"`
}

type SubscriptionUpdateParams struct {
	Amount           int64             `json:"amount,omitempty"`
	Name             string            `json:"name,omitempty"`
	PaymentReference string            `json:"payment_reference,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

type SubscriptionPauseParams struct {
	// PauseCycles skips a number of charge cycles instead of pausing
	// indefinitely.
	PauseCycles int               `json:"pause_cycles,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type SubscriptionResumeParams struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

type SubscriptionCancelParams struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

type SubscriptionListParams struct {
	ListParams
	Customer string
	Mandate  string
	Status   []SubscriptionStatus
}

func (p SubscriptionListParams) values() url.Values {
	v := p.ListParams.values()
	if p.Customer != "" {
		v.Set("customer", p.Customer)
	}
	if p.Mandate != "" {
		v.Set("mandate", p.Mandate)
	}
	for _, s := range p.Status {
		v.Add("status", string(s))
	}
	return v
}

type SubscriptionList struct {
	Subscriptions []Subscription
	Meta          ListMeta
}

type SubscriptionsService interface {
	Create(ctx context.Context, params SubscriptionCreateParams, opts ...RequestOption) (*Subscription, error)
	Get(ctx context.Context, id string) (*Subscription, error)
	Update(ctx context.Context, id string, params SubscriptionUpdateParams) (*Subscription, error)
	List(ctx context.Context, params SubscriptionListParams) (*SubscriptionList, error)
	All(params SubscriptionListParams) *Iterator[Subscription]

	// Pause stops charging until Resume is called or the pause cycles run
	// out. Only active subscriptions can be paused.
	Pause(ctx context.Context, id string, params SubscriptionPauseParams, opts ...RequestOption) (*Subscription, error)
	Resume(ctx context.Context, id string, params SubscriptionResumeParams, opts ...RequestOption) (*Subscription, error)
	Cancel(ctx context.Context, id string, params SubscriptionCancelParams, opts ...RequestOption) (*Subscription, error)
}

type subscriptionsService struct {
	client *Client
}

type subscriptionEnvelope struct {
	errorEnvelope
	Subscription *Subscription `json:"subscriptions"`
}

type subscriptionListEnvelope struct {
	errorEnvelope
	Subscriptions []Subscription `json:"subscriptions"`
	Meta          ListMeta       `json:"meta"`
}

type subscriptionCreateRequest struct {
	Subscriptions SubscriptionCreateParams `json:"subscriptions"`
}

type subscriptionUpdateRequest struct {
	Subscriptions SubscriptionUpdateParams `json:"subscriptions"`
}

type subscriptionPauseRequest struct {
	Data SubscriptionPauseParams `json:"data"`
}

type subscriptionResumeRequest struct {
	Data SubscriptionResumeParams `json:"data"`
}

type subscriptionCancelRequest struct {
	Data SubscriptionCancelParams `json:"data"`
}

func (s *subscriptionsService) Create(ctx context.Context, params SubscriptionCreateParams, opts ...RequestOption) (*Subscription, error) {
	env := subscriptionEnvelope{}
	err := s.client.post(ctx, s.client.url("/subscriptions"), subscriptionCreateRequest{Subscriptions: params}, &env, opts...)
	if err != nil {
		if IsIdempotentCreationConflict(err) {
			if id := ConflictingResourceID(err); id != "" {
				return s.Get(ctx, id)
			}
		}
		return nil, err
	}
	return env.Subscription, nil
}

func (s *subscriptionsService) Get(ctx context.Context, id string) (*Subscription, error) {
	env := subscriptionEnvelope{}
	err := s.client.do(ctx, http.MethodGet, s.client.url("/subscriptions/%s", id), nil, &env)
	if err != nil {
		return nil, err
	}
	return env.Subscription, nil
}

func (s *subscriptionsService) Update(ctx context.Context, id string, params SubscriptionUpdateParams) (*Subscription, error) {
	env := subscriptionEnvelope{}
	err := s.client.do(ctx, http.MethodPut, s.client.url("/subscriptions/%s", id), subscriptionUpdateRequest{Subscriptions: params}, &env)
	if err != nil {
		return nil, err
	}
	return env.Subscription, nil
}

func (s *subscriptionsService) List(ctx context.Context, params SubscriptionListParams) (*SubscriptionList, error) {
	env := subscriptionListEnvelope{}
	requestUrl := withQuery(s.client.url("/subscriptions"), params.values())
	err := s.client.do(ctx, http.MethodGet, requestUrl, nil, &env)
	if err != nil {
		return nil, err
	}
	return &SubscriptionList{Subscriptions: env.Subscriptions, Meta: env.Meta}, nil
}

func (s *subscriptionsService) All(params SubscriptionListParams) *Iterator[Subscription] {
	return newIterator(params.After, func(ctx context.Context, after string) ([]Subscription, ListMeta, error) {
		p := params
		p.After = after
		p.Before = ""
		list, err := s.List(ctx, p)
		if err != nil {
			return nil, ListMeta{}, err
		}
		return list.Subscriptions, list.Meta, nil
	})
}

func (s *subscriptionsService) Pause(ctx context.Context, id string, params SubscriptionPauseParams, opts ...RequestOption) (*Subscription, error) {
	env := subscriptionEnvelope{}
	err := s.client.post(ctx, s.client.url("/subscriptions/%s/actions/pause", id), subscriptionPauseRequest{Data: params}, &env, opts...)
	if err != nil {
		return nil, err
	}
	return env.Subscription, nil
}

func (s *subscriptionsService) Resume(ctx context.Context, id string, params SubscriptionResumeParams, opts ...RequestOption) (*Subscription, error) {
	env := subscriptionEnvelope{}
	err := s.client.post(ctx, s.client.url("/subscriptions/%s/actions/resume", id), subscriptionResumeRequest{Data: params}, &env, opts...)
	if err != nil {
		return nil, err
	}
	return env.Subscription, nil
}

func (s *subscriptionsService) Cancel(ctx context.Context, id string, params SubscriptionCancelParams, opts ...RequestOption) (*Subscription, error) {
	env := subscriptionEnvelope{}
	err := s.client.post(ctx, s.client.url("/subscriptions/%s/actions/cancel", id), subscriptionCancelRequest{Data: params}, &env, opts...)
	if err != nil {
		return nil, err
	}
	return env.Subscription, nil
}
