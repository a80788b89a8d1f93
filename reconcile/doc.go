// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reconcile resolves votes with an unknown ledger outcome.

The coordinator parks a vote as pending when the ledger call times out or
the connection drops mid-flight. This package owns the only two legal exits
from that state:

  - the ledger reports the token committed: finalize with its receipt
  - the grace period elapses with no trace of the token: release the
    reservation so the voter can vote again

Run loops on a ticker; each Sweep lists unresolved entries (pending rows,
plus reservations stale enough that their owner must have died) and fans the
ledger lookups out through an errgroup. Lookup failures leave entries
untouched for the next sweep - the reconciler never resolves by guessing.
*/
package reconcile
