// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package eligibility decides whether a vote attempt is authorized.

Check runs three reads in order and fails with the first violated rule:

  - ErrElectionClosed: unknown election, inactive, or outside [start, end)
  - ErrUnknownCandidate: candidate not part of the election
  - ErrNotEligible: no eligibility record for (election, voter)

The gate has no side effects. It deliberately does not look at vote_status;
"already voted" is the reservation's verdict, not an authorization question.
*/
package eligibility
