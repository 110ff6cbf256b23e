// Package main is the entry point for the romanization Lambda function.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/pricofy/uroman-gateway/internal/app"
	"github.com/pricofy/uroman-gateway/internal/config"
	"github.com/pricofy/uroman-gateway/internal/logging"
	"github.com/pricofy/uroman-gateway/internal/platform"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewProduction("info").Error(err, "invalid configuration")
		os.Exit(1)
	}

	log := app.NewLogger(cfg)
	a, err := app.New(cfg, log)
	if err != nil {
		log.Error(err, "failed to start")
		os.Exit(1)
	}

	d, err := newDispatcher(a)
	if err != nil {
		log.Error(err, "failed to start", "platform", cfg.Kind)
		os.Exit(1)
	}

	log.Info("starting", "platform", cfg.Kind, "mode", cfg.Mode, "engine", cfg.Engine)
	lambda.Start(d.handleRequest)
}

// dispatcher routes raw Lambda events to the configured platform adapter.
type dispatcher struct {
	kind    platform.Kind
	mode    string
	log     logging.Logger
	warmer  *Warmer
	gateway *platform.Adapter[events.APIGatewayProxyRequest, events.APIGatewayProxyResponse]
	direct  *platform.Adapter[json.RawMessage, json.RawMessage]
}

func newDispatcher(a *app.App) (*dispatcher, error) {
	d := &dispatcher{
		kind:   a.Config.Kind,
		mode:   a.Config.Mode,
		log:    a.Log,
		warmer: NewWarmer(a.Binding, a.Config.FunctionName, a.Log),
	}

	switch a.Config.Kind {
	case platform.KindGateway:
		d.gateway = platform.NewGateway(a.Services(), a.Config.AllowedOrigin)
	case platform.KindDirect:
		d.direct = platform.NewDirect(a.Services())
	case platform.KindEdge:
		// config.Load already rejects edge; this covers callers that build
		// the Config directly.
		if _, err := platform.NewEdge(a.Services()); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("platform %q is not served by the Lambda runtime", a.Config.Kind)
	}
	return d, nil
}

func (d *dispatcher) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup detection (MUST be first - before any other processing)
	if warmup, ok := IsWarmupEvent(event); ok {
		return d.warmer.HandleWarmup(ctx, warmup)
	}

	log := d.log
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.WithValues("aws_request_id", lc.AwsRequestID)
	}

	switch d.kind {
	case platform.KindGateway:
		var req events.APIGatewayProxyRequest
		if err := json.Unmarshal(event, &req); err != nil {
			log.Info("event is not an API Gateway request", "error", err.Error())
		}
		return d.handleGateway(ctx, req), nil
	default:
		return d.handleDirect(ctx, event), nil
	}
}

func (d *dispatcher) handleGateway(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	switch {
	case req.HTTPMethod == http.MethodGet || strings.HasSuffix(req.Path, "/info"):
		return d.gateway.HandleInfo(ctx, req)
	case d.mode == config.ModeMCP || strings.HasSuffix(req.Path, "/mcp"):
		return d.gateway.HandleProtocol(ctx, req)
	default:
		return d.gateway.HandleHTTP(ctx, req)
	}
}

func (d *dispatcher) handleDirect(ctx context.Context, event json.RawMessage) json.RawMessage {
	switch {
	case isInfoEvent(event):
		return d.direct.HandleInfo(ctx, event)
	case d.mode == config.ModeMCP:
		return d.direct.HandleProtocol(ctx, event)
	default:
		return d.direct.HandleHTTP(ctx, event)
	}
}

// isInfoEvent reports whether a direct payload asks for service info.
func isInfoEvent(event json.RawMessage) bool {
	var probe struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(event, &probe); err != nil {
		return false
	}
	return probe.Action == "info"
}
