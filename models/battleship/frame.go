package battleship

type CellView struct {
	Name   string `json:"name"`
	Result string `json:"result,omitempty"`
	Vessel string `json:"vessel,omitempty"`
	Flash  bool   `json:"flash,omitempty"`
	Active bool   `json:"active,omitempty"`
}

type VesselView struct {
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Size     int    `json:"size"`
	Damage   int    `json:"damage"`
	Sunk     bool   `json:"sunk"`
	Ability  string `json:"ability"`
	Downtime int    `json:"downtime"`
	Stacks   int    `json:"stacks,omitempty"`
}

type BoardView struct {
	Owner  string       `json:"owner"`
	Cells  []CellView   `json:"cells"`
	Fleet  []VesselView `json:"fleet"`
	Locked bool         `json:"locked,omitempty"`
}

// Frame is the whole renderable state after one event.
type Frame struct {
	GameUuid    string    `json:"game_uuid"`
	State       string    `json:"state"`
	Turn        int       `json:"turn"`
	MatchStatus string    `json:"match_status,omitempty"`
	Player      BoardView `json:"player"`
	Comp        BoardView `json:"comp"`
	Messages    Messages  `json:"messages"`
	Pending     string    `json:"pending,omitempty"`
	Orientation string    `json:"orientation,omitempty"`
	Charged     string    `json:"charged,omitempty"`
	SkillsReady []string  `json:"skills_ready,omitempty"`
}

// Frame snapshots the game. Enemy vessels stay hidden until sunk.
func (g *Game) Frame() Frame {
	frame := Frame{
		GameUuid:    g.Uuid,
		State:       g.flow.state.String(),
		Turn:        g.flow.turn,
		MatchStatus: g.matchStatus,
		Player:      boardView(g.player, true),
		Comp:        boardView(g.comp, false),
		Messages:    *g.messages,
		SkillsReady: ReadySkills(g.player.fleet),
	}

	if g.flow.state == StateSetup {
		if v := g.player.NextUndeployed(); v != nil {
			frame.Pending = v.String()
		}
		frame.Orientation = g.setupOrientation.String()
	}
	if g.charged != nil {
		frame.Charged = g.charged.String()
	}
	return frame
}

func boardView(p *Player, visible bool) BoardView {
	view := BoardView{
		Owner:  p.name,
		Cells:  make([]CellView, 0, len(p.board.order)),
		Fleet:  make([]VesselView, 0, len(p.fleet)),
		Locked: p.board.targetLocked,
	}

	for _, t := range p.board.order {
		cell := CellView{Name: t.name, Result: t.result.String(), Flash: t.Flash, Active: t.Active}
		if t.vessel != nil && (visible || t.vessel.Sunk()) {
			cell.Vessel = t.vessel.name
		}
		view.Cells = append(view.Cells, cell)
	}

	for _, v := range p.fleet {
		if !visible && !v.Sunk() {
			continue
		}
		view.Fleet = append(view.Fleet, VesselView{
			Kind:     v.kind.String(),
			Name:     v.name,
			Size:     v.size,
			Damage:   v.damage,
			Sunk:     v.Sunk(),
			Ability:  v.ability.name,
			Downtime: v.ability.downtime,
			Stacks:   v.ability.stacks,
		})
	}
	return view
}
