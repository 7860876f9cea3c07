package hub

// subscriptionRegistry tracks which subscriber belongs to which groups.
// It keeps a reverse index so a disconnect can drop every membership in
// one call. Not safe for concurrent use; the Hub serializes access.
type subscriptionRegistry struct {
	groups  map[Group]map[Subscriber]struct{}
	members map[Subscriber]map[Group]struct{}
}

func newSubscriptionRegistry() *subscriptionRegistry {
	return &subscriptionRegistry{
		groups:  make(map[Group]map[Subscriber]struct{}),
		members: make(map[Subscriber]map[Group]struct{}),
	}
}

// join adds the subscriber to the group. Joining twice is a no-op.
func (r *subscriptionRegistry) join(group Group, sub Subscriber) {
	if r.groups[group] == nil {
		r.groups[group] = make(map[Subscriber]struct{})
	}
	r.groups[group][sub] = struct{}{}

	if r.members[sub] == nil {
		r.members[sub] = make(map[Group]struct{})
	}
	r.members[sub][group] = struct{}{}
}

// drop removes the subscriber from every group it joined.
func (r *subscriptionRegistry) drop(sub Subscriber) {
	for group := range r.members[sub] {
		delete(r.groups[group], sub)
		if len(r.groups[group]) == 0 {
			delete(r.groups, group)
		}
	}
	delete(r.members, sub)
}

// membersOf returns a snapshot of the group's subscribers. An unknown
// group yields an empty slice.
func (r *subscriptionRegistry) membersOf(group Group) []Subscriber {
	subs := make([]Subscriber, 0, len(r.groups[group]))
	for sub := range r.groups[group] {
		subs = append(subs, sub)
	}
	return subs
}
