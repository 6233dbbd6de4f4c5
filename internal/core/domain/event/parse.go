package event

import "fmt"

// Payload is the `data` object of a homeEvents GraphQL response.
type Payload struct {
	Esports *struct {
		Events []rawEvent `json:"events"`
	} `json:"esports"`
}

type rawEvent struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	State     State  `json:"state"`
	Type      string `json:"type"`
	BlockName string `json:"blockName"`
	League    *struct {
		Image string `json:"image"`
		Name  string `json:"name"`
		Slug  string `json:"slug"`
	} `json:"league"`
	Match *struct {
		Strategy *struct {
			Count int `json:"count"`
		} `json:"strategy"`
	} `json:"match"`
	MatchTeams []struct {
		Name       string `json:"name"`
		Code       string `json:"code"`
		Image      string `json:"image"`
		LightImage string `json:"lightImage"`
		Result     *struct {
			GameWins int     `json:"gameWins"`
			Outcome  *string `json:"outcome"`
		} `json:"result"`
	} `json:"matchTeams"`
	Tournament *struct {
		Name string `json:"name"`
		ID   string `json:"id"`
	} `json:"tournament"`
}

// ParseEvents flattens an upstream payload. A nil payload or one without
// esports events yields an empty, non-nil slice.
func ParseEvents(p *Payload) []Event {
	if p == nil || p.Esports == nil {
		return []Event{}
	}
	out := make([]Event, 0, len(p.Esports.Events))
	for _, re := range p.Esports.Events {
		ev := Event{
			ID:          re.ID,
			MatchFormat: "BO1",
			MatchTeams:  make([]MatchTeam, 0, len(re.MatchTeams)),
			StartTime:   re.StartTime,
			State:       re.State,
			Type:        re.Type,
			BlockName:   re.BlockName,
		}
		if re.League != nil {
			ev.League = League{Image: re.League.Image, Name: re.League.Name, Slug: re.League.Slug}
		}
		if re.Match != nil && re.Match.Strategy != nil && re.Match.Strategy.Count > 0 {
			ev.MatchFormat = fmt.Sprintf("BO%d", re.Match.Strategy.Count)
		}
		for _, rt := range re.MatchTeams {
			team := MatchTeam{Name: rt.Name, Code: rt.Code, Image: rt.Image}
			if team.Image == "" {
				team.Image = rt.LightImage
			}
			if rt.Result != nil {
				team.GameWins = rt.Result.GameWins
				if rt.Result.Outcome != nil && *rt.Result.Outcome != "" {
					team.Outcome = rt.Result.Outcome
				}
			}
			ev.MatchTeams = append(ev.MatchTeams, team)
		}
		if re.Tournament != nil {
			ev.Tournament = Tournament{Name: re.Tournament.Name, ID: re.Tournament.ID}
		}
		out = append(out, ev)
	}
	return out
}
