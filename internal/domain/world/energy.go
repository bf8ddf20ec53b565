package world

// Clamp bounds an energy balance to [Min, Max].
func (e EnergyTuning) Clamp(v int) int {
	if v < e.Min {
		return e.Min
	}
	if v > e.Max {
		return e.Max
	}
	return v
}

// VisitReward shrinks with every door already visited and never drops below the floor.
func (e EnergyTuning) VisitReward(visited int) int {
	r := e.VisitRewardBase - e.VisitRewardDecay*visited
	if r < e.VisitRewardFloor {
		return e.VisitRewardFloor
	}
	return r
}

func (u *User) Credit(e EnergyTuning, amount int) {
	u.Energy = e.Clamp(u.Energy + amount)
}

// Debit returns false without changing the balance when it cannot cover amount.
func (u *User) Debit(e EnergyTuning, amount int) bool {
	if u.Energy-amount < e.Min {
		return false
	}
	u.Energy = e.Clamp(u.Energy - amount)
	return true
}

// RecordGrief bumps the counter and reports whether the reward threshold was hit,
// in which case the counter is already back at zero.
func (u *User) RecordGrief(threshold int) bool {
	u.GriefCount++
	if u.GriefCount >= threshold {
		u.GriefCount = 0
		return true
	}
	return false
}
