// Package fusion merges independently ranked candidate lists into one
// consensus ranking.
//
// Two stateless algorithms are provided:
//
//   - ReciprocalRank: sums 1/(k+rank) contributions across rankings. Robust
//     to incomparable score scales because only rank positions matter.
//   - Weighted: max-normalizes each ranking's scores to [0,1], then combines
//     them with caller-supplied weights.
//
// Both are deterministic given deterministic input order and never mutate
// their inputs. Score ties are broken by the first-seen rank, then by id.
package fusion
