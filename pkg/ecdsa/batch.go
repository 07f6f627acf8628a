package ecdsa

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrBatchMismatch indicates batch inputs of differing lengths.
var ErrBatchMismatch = errors.New("ecdsa: batch inputs have mismatched lengths")

// BatchVerify verifies many (prehash, signature) pairs under one key,
// spread over the available CPUs. All operations here are pure functions
// over immutable values, so the only coordination needed is the errgroup.
// The first failing index aborts the remaining work.
func BatchVerify(ctx context.Context, public *VerifyingKey, prehashes [][]byte, sigs []Signature) error {
	if len(prehashes) != len(sigs) {
		return ErrBatchMismatch
	}
	g, ctx := errgroup.WithContext(ctx)
	workers := runtime.NumCPU()
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := w; i < len(sigs); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := public.Verify(sigs[i], prehashes[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// BatchRecover recovers the public key for each (signature, prehash) pair
// concurrently. The result slice is index-aligned with the inputs.
func BatchRecover(ctx context.Context, sigs []RecoverableSignature, prehashes [][]byte) ([]*VerifyingKey, error) {
	if len(prehashes) != len(sigs) {
		return nil, ErrBatchMismatch
	}
	keys := make([]*VerifyingKey, len(sigs))
	g, ctx := errgroup.WithContext(ctx)
	workers := runtime.NumCPU()
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := w; i < len(sigs); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				key, err := sigs[i].Recover(prehashes[i])
				if err != nil {
					return err
				}
				keys[i] = key
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return keys, nil
}
