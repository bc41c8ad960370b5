package domain

// SetID stamps the surrogate key assigned by the record store.
func (p *Participant) SetID(id int64) { p.ID = id }

// SetID stamps the surrogate key assigned by the record store.
func (n *MatchingNight) SetID(id int64) { n.ID = id }

// SetID stamps the surrogate key assigned by the record store.
func (b *Matchbox) SetID(id int64) { b.ID = id }

// SetID stamps the surrogate key assigned by the record store.
func (p *Penalty) SetID(id int64) { p.ID = id }
