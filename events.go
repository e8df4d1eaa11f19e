package driftpay

import (
	"context"
	"net/http"
	"net/url"
)

// Event records something that happened to a resource: a payment being
// submitted, a mandate being cancelled by the customer's bank, and so on.
// The same type is delivered in webhook payloads.
type Event struct {
	ID           string            `json:"id"`
	CreatedAt    string            `json:"created_at"`
	ResourceType string            `json:"resource_type"`
	Action       string            `json:"action"`
	Details      EventDetails      `json:"details"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Links        EventLinks        `json:"links"`
}

// EventDetails explains what caused the event. Origin is one of bank, api,
// driftpay or customer.
type EventDetails struct {
	Origin      string `json:"origin,omitempty"`
	Cause       string `json:"cause,omitempty"`
	Description string `json:"description,omitempty"`
	Scheme      string `json:"scheme,omitempty"`
	ReasonCode  string `json:"reason_code,omitempty"`
}

type EventLinks struct {
	Customer                    string `json:"customer,omitempty"`
	CustomerBankAccount         string `json:"customer_bank_account,omitempty"`
	Mandate                     string `json:"mandate,omitempty"`
	NewCustomerBankAccount      string `json:"new_customer_bank_account,omitempty"`
	NewMandate                  string `json:"new_mandate,omitempty"`
	ParentEvent                 string `json:"parent_event,omitempty"`
	Payment                     string `json:"payment,omitempty"`
	Payout                      string `json:"payout,omitempty"`
	PreviousCustomerBankAccount string `json:"previous_customer_bank_account,omitempty"`
	Refund                      string `json:"refund,omitempty"`
	Subscription                string `json:"subscription,omitempty"`
}

type EventListParams struct {
	ListParams
	// ResourceType is one of payments, mandates, payouts, refunds,
	// subscriptions.
	ResourceType string
	Action       string
	// Mandate, Payment etc. restrict to events of one resource.
	Mandate      string
	Payment      string
	Payout       string
	Refund       string
	Subscription string
	ParentEvent  string
	// Include embeds the linked resource of each event in the response.
	Include string
}

func (p EventListParams) values() url.Values {
	v := p.ListParams.values()
	if p.ResourceType != "" {
		v.Set("resource_type", p.ResourceType)
	}
	if p.Action != "" {
		v.Set("action", p.Action)
	}
	if p.Mandate != "" {
		v.Set("mandate", p.Mandate)
	}
	if p.Payment != "" {
		v.Set("payment", p.Payment)
	}
	if p.Payout != "" {
		v.Set("payout", p.Payout)
	}
	if p.Refund != "" {
		v.Set("refund", p.Refund)
	}
	if p.Subscription != "" {
		v.Set("subscription", p.Subscription)
	}
	if p.ParentEvent != "" {
		v.Set("parent_event", p.ParentEvent)
	}
	if p.Include != "" {
		v.Set("include", p.Include)
	}
	return v
}

type EventList struct {
	Events []Event
	Meta   ListMeta
}

type EventsService interface {
	Get(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, params EventListParams) (*EventList, error)
	All(params EventListParams) *Iterator[Event]
}

type eventsService struct {
	client *Client
}

type eventEnvelope struct {
	errorEnvelope
	Event *Event `json:"events"`
}

type eventListEnvelope struct {
	errorEnvelope
	Events []Event  `json:"events"`
	Meta   ListMeta `json:"meta"`
}

func (s *eventsService) Get(ctx context.Context, id string) (*Event, error) {
	env := eventEnvelope{}
	err := s.client.do(ctx, http.MethodGet, s.client.url("/events/%s", id), nil, &env)
	if err != nil {
		return nil, err
	}
	return env.Event, nil
}

func (s *eventsService) List(ctx context.Context, params EventListParams) (*EventList, error) {
	env := eventListEnvelope{}
	requestUrl := withQuery(s.client.url("/events"), params.values())
	err := s.client.do(ctx, http.MethodGet, requestUrl, nil, &env)
	if err != nil {
		return nil, err
	}
	return &EventList{Events: env.Events, Meta: env.Meta}, nil
}

func (s *eventsService) All(params EventListParams) *Iterator[Event] {
	return newIterator(params.After, func(ctx context.Context, after string) ([]Event, ListMeta, error) {
		p := params
		p.After = after
		p.Before = ""
		list, err := s.List(ctx, p)
		if err != nil {
			return nil, ListMeta{}, err
		}
		return list.Events, list.Meta, nil
	})
}
