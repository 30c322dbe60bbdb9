package teams

// Standing is the serialized shape of a team at a point in the tournament.
type Standing struct {
	Name            string `json:"name"`
	ISOCode         string `json:"isoCode"`
	FIBARanking     int    `json:"fibaRanking"`
	Group           string `json:"group,omitempty"`
	Points          int    `json:"points"`
	Wins            int    `json:"wins"`
	PointsScored    int    `json:"pointsScored"`
	PointsConceded  int    `json:"pointsConceded"`
	PointDifference int    `json:"pointDifference"`
}

// Standings converts a list of teams to summaries, preserving order.
func Standings(items []*Team) []Standing {
	out := make([]Standing, 0, len(items))
	for _, t := range items {
		out = append(out, t.Summary())
	}
	return out
}
