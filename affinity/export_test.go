package affinity

// ParseTopologyDropped exposes the dropped-line count to external tests.
var ParseTopologyDropped = parseTopology
