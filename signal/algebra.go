package signal

// Add returns s + other.
func (s Signal) Add(other Signal) Signal {
	a, b := s, other
	return Signal{
		u:       func(t float64) float64 { return a.Value(t) + b.Value(t) },
		name:    "(" + a.name + "+" + b.name + ")",
		formula: a.formula + " + " + b.formula,
		params:  Params{},
	}
}

// Multiply returns the pointwise product s · other.
func (s Signal) Multiply(other Signal) Signal {
	a, b := s, other
	return Signal{
		u:       func(t float64) float64 { return a.Value(t) * b.Value(t) },
		name:    "(" + a.name + "*" + b.name + ")",
		formula: a.formula + " · " + b.formula,
		params:  Params{},
	}
}

// Shift returns s(t - tau).
func (s Signal) Shift(tau float64) Signal {
	a := s
	return Signal{
		u:       func(t float64) float64 { return a.Value(t - tau) },
		name:    a.name + shiftArgument(tau),
		formula: substituteTime(a.formula, shiftArgument(tau)),
		params:  Params{"tau": tau},
	}
}

// Scale returns k · s(t).
func (s Signal) Scale(k float64) Signal {
	a := s
	return Signal{
		u:       func(t float64) float64 { return k * a.Value(t) },
		name:    formatNumber(k) + a.name,
		formula: formatNumber(k) + "·(" + a.formula + ")",
		params:  Params{"k": k},
	}
}

// TimeScale returns s(a·t).
func (s Signal) TimeScale(a float64) Signal {
	x := s
	arg := "(" + formatNumber(a) + "t)"
	return Signal{
		u:       func(t float64) float64 { return x.Value(a * t) },
		name:    x.name + arg,
		formula: substituteTime(x.formula, arg),
		params:  Params{"a": a},
	}
}
