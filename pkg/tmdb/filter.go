package tmdb

// FilterCast drops excluded people first, then keeps members whose order is
// below the limit. Excluded members' order slots are not backfilled, so the
// result can be shorter than Limit even when more members exist.
func FilterCast(cast []CastMember, q CastQuery) []CastMember {
	var excluded map[int64]struct{}
	if len(q.ExcludeIDs) > 0 {
		excluded = make(map[int64]struct{}, len(q.ExcludeIDs))
		for _, id := range q.ExcludeIDs {
			excluded[id] = struct{}{}
		}
	}

	out := make([]CastMember, 0, len(cast))
	for _, m := range cast {
		if _, skip := excluded[m.ID]; skip {
			continue
		}
		if q.Limit > 0 && m.Order >= q.Limit {
			continue
		}
		out = append(out, m)
	}
	return out
}

// FilterCredits keeps credits whose vote average meets the threshold.
func FilterCredits(credits []MovieCredit, q CreditQuery) []MovieCredit {
	out := make([]MovieCredit, 0, len(credits))
	for _, c := range credits {
		if q.MinVoteAverage != 0 && c.VoteAverage < q.MinVoteAverage {
			continue
		}
		out = append(out, c)
	}
	return out
}
