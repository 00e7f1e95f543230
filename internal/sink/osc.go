package sink

import (
	"fmt"
	"log"

	"github.com/hypebeast/go-osc/osc"
)

// OSC is the one concrete Sink the module ships: it forwards each
// Play call as an OSC /sampler message, the same address and argument
// order the teacher's Model.SendOSCSamplerMessage builds for its own
// sampler engine. A synth on the other end is an external
// collaborator (§1) — this type only knows how to format and send the
// message, never whether anything answered.
type OSC struct {
	client *osc.Client
}

// NewOSC builds an OSC sink addressed at host:port.
func NewOSC(host string, port int) *OSC {
	return &OSC{client: osc.NewClient(host, port)}
}

// Play sends "/sampler" name variation pan as an OSC message. Per §6.1/§7,
// a send failure is logged and swallowed — it must never propagate
// into the scheduler's tick loop.
func (s *OSC) Play(name string, variation int, pan float64) {
	if s == nil || s.client == nil {
		return
	}
	msg := osc.NewMessage("/sampler")
	msg.Append(name)
	msg.Append(int32(variation))
	msg.Append(float32(pan))

	if err := s.client.Send(msg); err != nil {
		log.Printf("sink: error sending OSC /sampler message: %v", err)
		return
	}
	log.Printf("sink: /sampler %s", fmt.Sprintf("name=%s variation=%d pan=%.3f", name, variation, pan))
}
