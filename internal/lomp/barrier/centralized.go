package barrier

// Centralized composes a Counter (who noticed everybody arrived) with a
// Broadcast (how everybody else finds out) into a full Barrier. Mixing
// different counters and broadcasts produces the rest of the zoo without
// duplicating either concern.
type Centralized struct {
	counter   Counter
	broadcast Broadcast
	name      string
}

func NewCentralized(name string, counter Counter, broadcast Broadcast) *Centralized {
	return &Centralized{counter: counter, broadcast: broadcast, name: name}
}

func (c *Centralized) CheckIn(me int) bool {
	if c.counter.CheckIn(me) {
		c.counter.Wait()
		c.counter.Reset()
		return true
	}
	return false
}

func (c *Centralized) WakeUp(me int, inv *Invocation) {
	c.broadcast.WakeUp(me, inv)
}

func (c *Centralized) CheckOut(root bool, me int) *Invocation {
	if root {
		c.WakeUp(me, nil)
		return nil
	}
	return c.broadcast.Wait(me)
}

func (c *Centralized) FullBarrier(me int) { DefaultFullBarrier(c, me) }
func (c *Centralized) IsDistributed() bool { return false }
func (c *Centralized) Name() string        { return c.name }
