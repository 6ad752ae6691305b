package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/choretracker/pkg/api"
)

// CostServiceName is the fully-qualified name of the CostService service.
const CostServiceName = "choretracker.v1.CostService"

// Procedure paths of the CostService RPCs.
const (
	CostServicePreviewEvenSplitProcedure = "/choretracker.v1.CostService/PreviewEvenSplit"
	CostServiceValidateSplitProcedure    = "/choretracker.v1.CostService/ValidateSplit"
	CostServiceCreateCostProcedure       = "/choretracker.v1.CostService/CreateCost"
	CostServiceGetCostProcedure          = "/choretracker.v1.CostService/GetCost"
	CostServiceListCostsProcedure        = "/choretracker.v1.CostService/ListCosts"
)

// CostServiceClient is a client for the choretracker.v1.CostService service.
type CostServiceClient interface {
	// PreviewEvenSplit divides a total evenly without saving anything.
	PreviewEvenSplit(context.Context, *connect.Request[api.PreviewEvenSplitRequest]) (*connect.Response[api.PreviewEvenSplitResponse], error)
	// ValidateSplit checks manual shares against a total.
	ValidateSplit(context.Context, *connect.Request[api.ValidateSplitRequest]) (*connect.Response[api.ValidateSplitResponse], error)
	// CreateCost records a cost in a group.
	CreateCost(context.Context, *connect.Request[api.CreateCostRequest]) (*connect.Response[api.CreateCostResponse], error)
	// GetCost returns one cost with its shares.
	GetCost(context.Context, *connect.Request[api.GetCostRequest]) (*connect.Response[api.GetCostResponse], error)
	// ListCosts returns a group's costs, newest first.
	ListCosts(context.Context, *connect.Request[api.ListCostsRequest]) (*connect.Response[api.ListCostsResponse], error)
}

// NewCostServiceClient constructs a client for the choretracker.v1.CostService service. The JSON
// codec is installed first, so opts may still override it.
func NewCostServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CostServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &costServiceClient{
		previewEvenSplit: connect.NewClient[api.PreviewEvenSplitRequest, api.PreviewEvenSplitResponse](httpClient, baseURL+CostServicePreviewEvenSplitProcedure, opts...),
		validateSplit:    connect.NewClient[api.ValidateSplitRequest, api.ValidateSplitResponse](httpClient, baseURL+CostServiceValidateSplitProcedure, opts...),
		createCost:       connect.NewClient[api.CreateCostRequest, api.CreateCostResponse](httpClient, baseURL+CostServiceCreateCostProcedure, opts...),
		getCost:          connect.NewClient[api.GetCostRequest, api.GetCostResponse](httpClient, baseURL+CostServiceGetCostProcedure, opts...),
		listCosts:        connect.NewClient[api.ListCostsRequest, api.ListCostsResponse](httpClient, baseURL+CostServiceListCostsProcedure, opts...),
	}
}

type costServiceClient struct {
	previewEvenSplit *connect.Client[api.PreviewEvenSplitRequest, api.PreviewEvenSplitResponse]
	validateSplit    *connect.Client[api.ValidateSplitRequest, api.ValidateSplitResponse]
	createCost       *connect.Client[api.CreateCostRequest, api.CreateCostResponse]
	getCost          *connect.Client[api.GetCostRequest, api.GetCostResponse]
	listCosts        *connect.Client[api.ListCostsRequest, api.ListCostsResponse]
}

func (c *costServiceClient) PreviewEvenSplit(ctx context.Context, req *connect.Request[api.PreviewEvenSplitRequest]) (*connect.Response[api.PreviewEvenSplitResponse], error) {
	return c.previewEvenSplit.CallUnary(ctx, req)
}

func (c *costServiceClient) ValidateSplit(ctx context.Context, req *connect.Request[api.ValidateSplitRequest]) (*connect.Response[api.ValidateSplitResponse], error) {
	return c.validateSplit.CallUnary(ctx, req)
}

func (c *costServiceClient) CreateCost(ctx context.Context, req *connect.Request[api.CreateCostRequest]) (*connect.Response[api.CreateCostResponse], error) {
	return c.createCost.CallUnary(ctx, req)
}

func (c *costServiceClient) GetCost(ctx context.Context, req *connect.Request[api.GetCostRequest]) (*connect.Response[api.GetCostResponse], error) {
	return c.getCost.CallUnary(ctx, req)
}

func (c *costServiceClient) ListCosts(ctx context.Context, req *connect.Request[api.ListCostsRequest]) (*connect.Response[api.ListCostsResponse], error) {
	return c.listCosts.CallUnary(ctx, req)
}

// CostServiceHandler is implemented by the server side of the choretracker.v1.CostService service.
type CostServiceHandler interface {
	PreviewEvenSplit(context.Context, *connect.Request[api.PreviewEvenSplitRequest]) (*connect.Response[api.PreviewEvenSplitResponse], error)
	ValidateSplit(context.Context, *connect.Request[api.ValidateSplitRequest]) (*connect.Response[api.ValidateSplitResponse], error)
	CreateCost(context.Context, *connect.Request[api.CreateCostRequest]) (*connect.Response[api.CreateCostResponse], error)
	GetCost(context.Context, *connect.Request[api.GetCostRequest]) (*connect.Response[api.GetCostResponse], error)
	ListCosts(context.Context, *connect.Request[api.ListCostsRequest]) (*connect.Response[api.ListCostsResponse], error)
}

// NewCostServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewCostServiceHandler(svc CostServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	previewEvenSplitHandler := connect.NewUnaryHandler(CostServicePreviewEvenSplitProcedure, svc.PreviewEvenSplit, opts...)
	validateSplitHandler := connect.NewUnaryHandler(CostServiceValidateSplitProcedure, svc.ValidateSplit, opts...)
	createCostHandler := connect.NewUnaryHandler(CostServiceCreateCostProcedure, svc.CreateCost, opts...)
	getCostHandler := connect.NewUnaryHandler(CostServiceGetCostProcedure, svc.GetCost, opts...)
	listCostsHandler := connect.NewUnaryHandler(CostServiceListCostsProcedure, svc.ListCosts, opts...)
	return "/choretracker.v1.CostService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case CostServicePreviewEvenSplitProcedure:
			previewEvenSplitHandler.ServeHTTP(w, r)
		case CostServiceValidateSplitProcedure:
			validateSplitHandler.ServeHTTP(w, r)
		case CostServiceCreateCostProcedure:
			createCostHandler.ServeHTTP(w, r)
		case CostServiceGetCostProcedure:
			getCostHandler.ServeHTTP(w, r)
		case CostServiceListCostsProcedure:
			listCostsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
