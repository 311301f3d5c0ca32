package telemetry_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/conda-project/internal/adapters/telemetry"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/conda-project/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = telemetry.NoOpSpan{}
	var _ sdktrace.SpanProcessor = (*telemetry.LogBridge)(nil)
}

func TestOTelTracer_RecordsAttributesAndErrors(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := telemetry.NewProvider(sr)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	tracer := telemetry.NewOTelTracer("test")
	_, span := tracer.Start(context.Background(), "install")
	span.SetAttribute("environment", "default")
	span.SetAttribute("platforms", []string{"linux-64", "osx-arm64"})
	span.SetAttribute("packages", 12)
	span.SetAttribute("forced", true)
	span.RecordError(nil)
	span.RecordError(errors.New("transaction failed"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	got := ended[0]

	assert.Equal(t, "install", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "transaction failed", got.Status().Description)
	assert.Contains(t, got.Attributes(), attribute.String("environment", "default"))
	assert.Contains(t, got.Attributes(), attribute.StringSlice("platforms", []string{"linux-64", "osx-arm64"}))
	assert.Contains(t, got.Attributes(), attribute.Int("packages", 12))
	assert.Contains(t, got.Attributes(), attribute.Bool("forced", true))
	require.Len(t, got.Events(), 1)
}

func TestLogBridge_ReportsSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		log.EXPECT().Debug("start lock"),
		log.EXPECT().Debug(gomock.Cond(func(msg string) bool {
			return strings.HasPrefix(msg, "lock finished in ")
		})),
		log.EXPECT().Debug("start solve"),
		log.EXPECT().Debug(gomock.Cond(func(msg string) bool {
			return strings.HasPrefix(msg, "solve failed after ") && strings.HasSuffix(msg, ": no candidates")
		})),
	)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewLogBridge(log)))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	tracer := tp.Tracer("test")

	_, span := tracer.Start(context.Background(), "lock")
	span.End()

	_, span = tracer.Start(context.Background(), "solve")
	span.SetStatus(codes.Error, "no candidates")
	span.End()
}

func TestLogBridge_NilLogger(t *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewLogBridge(nil)))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "quiet")
	span.End()
}

func TestNoOpTracer(t *testing.T) {
	ctx := context.Background()
	got, span := telemetry.NewNoOpTracer().Start(ctx, "anything")
	assert.Equal(t, ctx, got)

	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
}
