// Package driftpay provides a typed Go client for the Driftpay bank debit API.
//
// # Overview
//
// The package defines one service per API resource (Customers, Mandates,
// Payments, ...). Each service exposes the CRUD-style operations of that
// resource plus its state-changing actions, all going through a single shared
// request pipeline that handles authentication, API versioning, idempotency
// keys and error mapping.
//
// Getting a client
//
//	client, err := driftpay.New(driftpay.Config{
//		Endpoint:    driftpay.SandboxEndpoint,
//		AccessToken: os.Getenv("DRIFTPAY_ACCESS_TOKEN"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	customer, err := client.Customers.Create(ctx, driftpay.CustomerCreateParams{
//		Email:       "frank@example.com",
//		GivenName:   "Frank",
//		FamilyName:  "Osborne",
//		CountryCode: "GB",
//	})
//
// # Pagination
//
// List operations return one page of results together with the cursor
// metadata of that page. The All variants wrap List in a lazy iterator that
// follows the after cursor until the collection is exhausted:
//
//	it := client.Payments.All(driftpay.PaymentListParams{})
//	for it.Next(ctx) {
//		payment := it.Value()
//		// ...
//	}
//	if err := it.Err(); err != nil {
//		// ...
//	}
//
// # Idempotency
//
// Every Create operation sends an Idempotency-Key header, either the one
// supplied via WithIdempotencyKey or a freshly generated one. When the API
// reports that a key was already used, the client fetches and returns the
// resource created by the first request, so retrying a Create is safe.
//
// # Errors
//
// API failures are returned as *APIError. Helpers such as IsValidationError,
// IsNotFoundError and IsInvalidStateError make it easy to branch on common
// cases. Failures below the API (connection errors, open circuit breaker)
// are reported as ErrTransportUnavailable.
package driftpay

import (
	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"

	"github.com/driftpay/driftpay-go/internal/logging"
	"github.com/driftpay/driftpay-go/internal/transport"
)

// Client is the entry point to the Driftpay API. Construct it with New.
//
// All services share one underlying HTTP client chain, so the circuit
// breaker state is per Client instance.
type Client struct {
	Customers            CustomersService
	CustomerBankAccounts CustomerBankAccountsService
	Creditors            CreditorsService
	Mandates             MandatesService
	Payments             PaymentsService
	Refunds              RefundsService
	Payouts              PayoutsService
	Subscriptions        SubscriptionsService
	Events               EventsService
	RedirectFlows        RedirectFlowsService
	BankDetailsLookups   BankDetailsLookupsService

	endpoint string
	caller   aurestclientapi.Client
	logger   logging.Logger
}

func New(conf Config) (*Client, error) {
	conf = conf.withDefaults()
	if err := validateConfig(conf); err != nil {
		return nil, err
	}

	logger := conf.Logger
	if logger == nil {
		logger = logging.NewNoopLogger()
	}

	caller := conf.Client
	if caller == nil {
		var err error
		caller, err = transport.ClientWith(
			transport.BearerTokenRequestManipulator(conf.AccessToken, conf.Version),
			"driftpay-api-breaker",
			conf.RequestTimeout,
			logger,
		)
		if err != nil {
			return nil, err
		}
	}

	c := &Client{
		endpoint: conf.Endpoint,
		caller:   caller,
		logger:   logger,
	}

	c.Customers = &customersService{client: c}
	c.CustomerBankAccounts = &customerBankAccountsService{client: c}
	c.Creditors = &creditorsService{client: c}
	c.Mandates = &mandatesService{client: c}
	c.Payments = &paymentsService{client: c}
	c.Refunds = &refundsService{client: c}
	c.Payouts = &payoutsService{client: c}
	c.Subscriptions = &subscriptionsService{client: c}
	c.Events = &eventsService{client: c}
	c.RedirectFlows = &redirectFlowsService{client: c}
	c.BankDetailsLookups = &bankDetailsLookupsService{client: c}

	return c, nil
}
