package strategy

// PolicyNoCache never caches.
func PolicyNoCache(CachingDecision) bool { return false }

// PolicyLCE (Leave Copy Everywhere) caches at every on-path cache node the
// content passes through on its way back to the receiver.
func PolicyLCE(CachingDecision) bool { return true }

// PolicyLCD (Leave Copy Down) caches only at the node exactly one hop
// downstream of whichever node actually served the content.
func PolicyLCD(d CachingDecision) bool {
	return d.Idx == d.ServingIdx-1
}
