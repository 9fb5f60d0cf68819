// Package testing provides test infrastructure for ledger and pool transactions.
//
// It follows the shape of a jtx environment: deterministic named accounts,
// a test environment that owns a real engine over a real state store, and
// assertion helpers that read committed state.
//
// # Basic Usage
//
//	func TestTransfer(t *testing.T) {
//	    env := jtx.NewTestEnv(t)
//
//	    alice := jtx.NewAccount("alice")
//	    bob := jtx.NewAccount("bob")
//
//	    env.Mint(alice, 1, 100)
//
//	    result := env.Submit(alice, token.NewTransfer(bob.ID, 1, 40))
//	    jtx.RequireTxSuccess(t, result)
//	    jtx.RequireBalance(t, env, alice, 1, 60)
//	}
//
// # TestEnv
//
// TestEnv wires tx.Engine to a state.Store. NewTestEnv keeps state in
// memory; NewTestEnvBacked uses a pebble database under t.TempDir() so the
// commit path runs against the on-disk backend.
//
//	env := jtx.NewTestEnv(t, jtx.WithFeePercent(0))
//	env.Balance(alice, 1)   // committed balance of asset 1
//	env.LPBalance(alice)    // committed LP shares
//	env.Pool()              // pool record, nil before init
//	env.Events()            // every event committed so far
//
// # Account
//
// Account derives a secp256k1 key pair from its name, so the same name
// always produces the same AccountID.
//
//	alice := jtx.NewAccount("alice")
//	sig := alice.Sign(payload)
package testing
