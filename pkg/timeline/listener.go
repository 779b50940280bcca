package timeline

// Listener receives change notifications from a Timeline. Notifications are
// fired synchronously at the point of mutation, on the mutating goroutine.
type Listener interface {
	ClipAdded(c Clip)
	ClipRemoved(id int)
	ClipModified(c Clip)
	TimelineCleared()
	DurationChanged(total int64)
}

// ListenerFuncs adapts a set of optional functions to the Listener
// interface. Nil fields are ignored.
type ListenerFuncs struct {
	OnClipAdded       func(c Clip)
	OnClipRemoved     func(id int)
	OnClipModified    func(c Clip)
	OnTimelineCleared func()
	OnDurationChanged func(total int64)
}

func (l ListenerFuncs) ClipAdded(c Clip) {
	if l.OnClipAdded != nil {
		l.OnClipAdded(c)
	}
}

func (l ListenerFuncs) ClipRemoved(id int) {
	if l.OnClipRemoved != nil {
		l.OnClipRemoved(id)
	}
}

func (l ListenerFuncs) ClipModified(c Clip) {
	if l.OnClipModified != nil {
		l.OnClipModified(c)
	}
}

func (l ListenerFuncs) TimelineCleared() {
	if l.OnTimelineCleared != nil {
		l.OnTimelineCleared()
	}
}

func (l ListenerFuncs) DurationChanged(total int64) {
	if l.OnDurationChanged != nil {
		l.OnDurationChanged(total)
	}
}
