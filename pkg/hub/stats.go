package hub

// Stats is a point-in-time view of Hub activity.
type Stats struct {
	Sequence    uint64 // newest assigned sequence number
	Capacity    int
	Published   uint64
	Dropped     uint64 // messages lost to lagging subscribers, summed over all of them
	Subscribers int64
}
