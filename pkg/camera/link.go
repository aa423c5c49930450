package camera

import (
	"github.com/camlink-protocol/camlink-go/pkg/camlog"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

// loggingLink records outbound traffic in the protocol log before
// handing it to the real link. The control wraps its configured Link
// with this at construction, so every send path is captured.
type loggingLink struct {
	inner Link
	c     *Control
}

func (l *loggingLink) SendCommand(component uint8, cmd wire.CommandID, args ...float64) error {
	ev := camlog.Outbound(wire.MsgCommand, component)
	ev.Message.Command = &cmd
	l.c.logEvent(ev)
	return l.inner.SendCommand(component, cmd, args...)
}

func (l *loggingLink) SendParam(name string, value any) error {
	ev := camlog.Outbound(wire.MsgParamSet, wire.ComponentCamera)
	ev.Message.Param = name
	l.c.logEvent(ev)
	return l.inner.SendParam(name, value)
}

func (l *loggingLink) RequestParam(name string) error {
	ev := camlog.Outbound(wire.MsgParamRequest, wire.ComponentCamera)
	ev.Message.Param = name
	l.c.logEvent(ev)
	return l.inner.RequestParam(name)
}

func (l *loggingLink) RequestAllParams() error {
	l.c.logEvent(camlog.Outbound(wire.MsgParamRequest, wire.ComponentCamera))
	return l.inner.RequestAllParams()
}

var _ Link = (*loggingLink)(nil)
