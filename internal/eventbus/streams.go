package eventbus

import "strings"

// StreamNameForTopic maps a dotted topic like "statlog.stat.recorded.v1"
// to the JetStream stream that owns it. Streams are keyed by the topic's
// first segment so a module's topics share one stream. The name keeps the
// topic's casing: NATS subjects are case-sensitive and a stream bound to
// "<name>.>" only matches subjects with the same first segment.
func StreamNameForTopic(topic string) string {
	if i := strings.IndexByte(topic, '.'); i > 0 {
		return topic[:i]
	}
	return topic
}
