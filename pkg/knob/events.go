package knob

// ValueChange is reported when a gesture commits a value.
// Old is the value reported previously (or set programmatically since).
type ValueChange struct {
	Old, New float64
}

// Transition asks the presentation layer to rotate the knob.
// Animated transitions go through the midpoint of the two angles;
// see NewRotation.
type Transition struct {
	OldAngle, NewAngle float64
	Animated           bool
}

// Observer receives the tracker's decisions. Calls happen synchronously on
// the goroutine driving the tracker and must not call back into it.
type Observer interface {
	ValueChanged(ValueChange)
	Transition(Transition)
}

// ObserverFuncs adapts a pair of functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnValueChanged func(ValueChange)
	OnTransition   func(Transition)
}

// ValueChanged implements Observer.
func (o ObserverFuncs) ValueChanged(vc ValueChange) {
	if o.OnValueChanged != nil {
		o.OnValueChanged(vc)
	}
}

// Transition implements Observer.
func (o ObserverFuncs) Transition(tr Transition) {
	if o.OnTransition != nil {
		o.OnTransition(tr)
	}
}

// Observers fans every call out to each observer in order.
type Observers []Observer

// ValueChanged implements Observer.
func (obs Observers) ValueChanged(vc ValueChange) {
	for _, o := range obs {
		o.ValueChanged(vc)
	}
}

// Transition implements Observer.
func (obs Observers) Transition(tr Transition) {
	for _, o := range obs {
		o.Transition(tr)
	}
}
