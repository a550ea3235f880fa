package synth

func (g *Generator) system(id string) (SystemProfile, error) {
	s, ok := g.profiles.Systems[id]
	if !ok {
		return SystemProfile{}, unknown("system", id)
	}
	return s, nil
}

// SystemTimeline returns the monthly baseline, actual and predicted health of a vehicle system.
func (g *Generator) SystemTimeline(systemID string) ([]TimelinePoint, error) {
	s, err := g.system(systemID)
	if err != nil {
		return nil, err
	}
	return append([]TimelinePoint(nil), s.Timeline...), nil
}

// SystemFactors returns the percentage contribution of each factor to a system's wear.
func (g *Generator) SystemFactors(systemID string) ([]Factor, error) {
	s, err := g.system(systemID)
	if err != nil {
		return nil, err
	}
	return append([]Factor(nil), s.Factors...), nil
}

func (g *Generator) SystemImprovements(systemID string) ([]ImprovementMetric, error) {
	s, err := g.system(systemID)
	if err != nil {
		return nil, err
	}
	return append([]ImprovementMetric(nil), s.Improvements...), nil
}

// ComponentImpact returns the projected effect of replacing a component. Components that are
// listed but have not been analysed report ErrUnknownKey.
func (g *Generator) ComponentImpact(componentID string) (ComponentProfile, error) {
	c, ok := g.profiles.Components[componentID]
	if !ok || !c.hasImpact() {
		return ComponentProfile{}, unknown("component impact", componentID)
	}
	return c, nil
}
