package main

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/pricofy/uroman-gateway/internal/engine/enginetest"
	"github.com/pricofy/uroman-gateway/internal/engine/lambdaengine"
	"github.com/pricofy/uroman-gateway/internal/logging"
)

func TestIsWarmupEvent(t *testing.T) {
	tests := []struct {
		name        string
		event       string
		wantOK      bool
		concurrency int
	}{
		{name: "warmup", event: `{"source":"warmup"}`, wantOK: true},
		{name: "warmup with concurrency", event: `{"source":"warmup","concurrency":3}`, wantOK: true, concurrency: 3},
		{name: "negative concurrency", event: `{"source":"warmup","concurrency":-2}`, wantOK: true},
		{name: "other source", event: `{"source":"aws.events"}`},
		{name: "romanize request", event: `{"text":"Привет"}`},
		{name: "not an object", event: `"warmup"`},
		{name: "invalid json", event: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ok := IsWarmupEvent(json.RawMessage(tt.event))
			if ok != tt.wantOK {
				t.Fatalf("IsWarmupEvent() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && w.Concurrency != tt.concurrency {
				t.Errorf("Concurrency = %d, want %d", w.Concurrency, tt.concurrency)
			}
		})
	}
}

type fakeInvoker struct {
	mu     sync.Mutex
	inputs []*lambdasdk.InvokeInput
	err    error
}

func (f *fakeInvoker) Invoke(_ context.Context, params *lambdasdk.InvokeInput, _ ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, params)
	return &lambdasdk.InvokeOutput{}, f.err
}

func newTestWarmer(f *enginetest.Fake, inv *fakeInvoker) *Warmer {
	w := NewWarmer(enginetest.Binding(f), "uroman-fn", logging.Discard())
	w.delay = 0
	w.newClient = func(context.Context) (lambdaengine.Invoker, error) {
		return inv, nil
	}
	return w
}

func warmupBody(t *testing.T, out interface{}) WarmupResponse {
	t.Helper()
	m, ok := out.(map[string]interface{})
	if !ok {
		t.Fatalf("response = %T", out)
	}
	if m["statusCode"] != 200 {
		t.Errorf("statusCode = %v", m["statusCode"])
	}
	body, ok := m["body"].(WarmupResponse)
	if !ok {
		t.Fatalf("body = %T", m["body"])
	}
	return body
}

func TestHandleWarmup_SelfInvoke(t *testing.T) {
	f := &enginetest.Fake{}
	inv := &fakeInvoker{}
	w := newTestWarmer(f, inv)

	out, err := w.HandleWarmup(context.Background(), &WarmupEvent{Source: WarmupSource, Concurrency: 3})
	if err != nil {
		t.Fatalf("HandleWarmup() unexpected error: %v", err)
	}

	body := warmupBody(t, out)
	if body.Status != "warm" || body.InstancesWarmed != 4 || !body.EngineReady {
		t.Errorf("body = %+v", body)
	}
	if len(f.Calls()) == 0 {
		t.Error("engine was not exercised during warmup")
	}

	if len(inv.inputs) != 3 {
		t.Fatalf("invocations = %d, want 3", len(inv.inputs))
	}
	for _, in := range inv.inputs {
		if *in.FunctionName != "uroman-fn" || in.InvocationType != types.InvocationTypeEvent {
			t.Errorf("input = %+v", in)
		}
		var child WarmupEvent
		if err := json.Unmarshal(in.Payload, &child); err != nil {
			t.Fatal(err)
		}
		if child.Concurrency != 0 {
			t.Errorf("child concurrency = %d, want 0", child.Concurrency)
		}
	}
}

func TestHandleWarmup_Failures(t *testing.T) {
	inv := &fakeInvoker{err: errors.New("throttled")}
	w := NewWarmer(enginetest.FailingBinding(errors.New("uroman missing")), "uroman-fn", logging.Discard())
	w.delay = 0
	w.newClient = func(context.Context) (lambdaengine.Invoker, error) {
		return inv, nil
	}

	out, err := w.HandleWarmup(context.Background(), &WarmupEvent{Source: WarmupSource, Concurrency: 2})
	if err != nil {
		t.Fatalf("HandleWarmup() unexpected error: %v", err)
	}

	body := warmupBody(t, out)
	if body.InstancesWarmed != 1 || body.EngineReady {
		t.Errorf("body = %+v", body)
	}
}

func TestHandleWarmup_NoFunctionName(t *testing.T) {
	inv := &fakeInvoker{}
	w := newTestWarmer(&enginetest.Fake{}, inv)
	w.functionName = ""

	out, _ := w.HandleWarmup(context.Background(), &WarmupEvent{Source: WarmupSource, Concurrency: 2})
	if body := warmupBody(t, out); body.InstancesWarmed != 1 {
		t.Errorf("InstancesWarmed = %d, want 1", body.InstancesWarmed)
	}
	if len(inv.inputs) != 0 {
		t.Errorf("invoked %d times without a function name", len(inv.inputs))
	}
}
