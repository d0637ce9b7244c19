package certify

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sortingnets/netcert/pkg/network"
)

// CertifyAll certifies nets concurrently, at most limit at a time when
// limit is positive. Each network gets its own certifier and solver.
// The first failure cancels the remaining runs.
func CertifyAll(ctx context.Context, nets []network.Network, limit int, options ...Option) ([]*Result, error) {
	options = append([]Option{}, options...)
	var checked config
	for _, option := range options {
		if err := option(&checked); err != nil {
			return nil, err
		}
	}
	if checked.solver != nil {
		return nil, errors.New("concurrent certification cannot share one solver, use WithSolverOptions")
	}

	results := make([]*Result, len(nets))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, net := range nets {
		i, net := i, net
		g.Go(func() error {
			result, err := Certify(ctx, net, options...)
			if err != nil {
				return errors.Wrapf(err, "network %d", i)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
