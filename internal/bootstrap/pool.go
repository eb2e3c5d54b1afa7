// Copyright 2026 The Rai Authors
// This file is part of Rai.
//
// Rai is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rai is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Rai. If not, see <http://www.gnu.org/licenses/>.

package bootstrap

import (
	"context"
	"errors"
	"math"
	"net/netip"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/raiprotocol/rai/internal/railog"
	"github.com/raiprotocol/rai/internal/raitypes"
)

var errNoPeers = errors.New("bootstrap: no peers available for pull")

// TargetConnections implements §4.5's scaling rule: the parallel
// connection count is a square-root function of total known blocks,
// clamped to [minConn, maxConn].
func TargetConnections(totalBlocks uint64, minConn, maxConn int) int {
	target := int(math.Sqrt(float64(totalBlocks)))
	if target < minConn {
		target = minConn
	}
	if target > maxConn {
		target = maxConn
	}
	return target
}

// PullFunc performs one account's pull against peer, returning an error the
// caller should treat as retryable (connect/read/validate failures).
type PullFunc func(ctx context.Context, peer netip.AddrPort, account raitypes.Account) error

// Puller drives a set of account pulls across a bounded pool of parallel
// connections, retrying a failed pull against a different peer up to
// maxAttempts times before giving up on that account (§4.5's failure
// policy: "retries... with a different peer if available, then gives up
// and logs").
type Puller struct {
	Peers       []netip.AddrPort
	Connections int
	MaxAttempts int
	Pull        PullFunc
	Logger      *railog.Logger
}

// Run pulls every account in accounts, fanning out across p.Connections
// worker goroutines. A single account's exhausted retries do not abort
// the others; Run returns the first non-retry error only if the errgroup
// itself is canceled (e.g. ctx done).
func (p *Puller) Run(ctx context.Context, accounts []raitypes.Account) error {
	if len(p.Peers) == 0 {
		return errNoPeers
	}
	conns := p.Connections
	if conns <= 0 {
		conns = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	work := make(chan raitypes.Account)

	g.Go(func() error {
		defer close(work)
		for _, acct := range accounts {
			select {
			case work <- acct:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < conns; i++ {
		worker := i
		g.Go(func() error {
			for acct := range work {
				if err := p.pullWithRetry(ctx, worker, acct); err != nil && p.Logger != nil {
					p.Logger.Warn("bulk-pull exhausted retries", zap.String("account", acct.String()), zap.Error(err))
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func (p *Puller) pullWithRetry(ctx context.Context, workerIdx int, acct raitypes.Account) error {
	peerIdx := workerIdx % len(p.Peers)
	bo := backoff.NewExponentialBackOff()
	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		peer := p.Peers[(peerIdx+attempt)%len(p.Peers)]
		if err := p.Pull(ctx, peer, acct); err == nil {
			return nil
		} else {
			lastErr = err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(bo.NextBackOff()):
		}
	}
	return lastErr
}
