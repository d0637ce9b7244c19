package certify

import (
	"context"
	"time"

	"github.com/sortingnets/netcert/pkg/network"
)

type InstrumentedCertifier struct {
	certifier             Certifier
	successMetricsEmitter func(time.Duration)
	failureMetricsEmitter func(time.Duration)
}

var _ Certifier = &InstrumentedCertifier{}

func NewInstrumentedCertifier(certifier Certifier, successMetricsEmitter, failureMetricsEmitter func(time.Duration)) *InstrumentedCertifier {
	return &InstrumentedCertifier{
		certifier:             certifier,
		successMetricsEmitter: successMetricsEmitter,
		failureMetricsEmitter: failureMetricsEmitter,
	}
}

// Certify reports a run that ends in a verdict, good or not, as a
// success.
func (ic *InstrumentedCertifier) Certify(ctx context.Context, net network.Network) (*Result, error) {
	start := time.Now()
	result, err := ic.certifier.Certify(ctx, net)
	if err != nil {
		ic.failureMetricsEmitter(time.Since(start))
	} else {
		ic.successMetricsEmitter(time.Since(start))
	}
	return result, err
}
