package viz

import (
	"time"

	"charm.land/lipgloss/v2"
)

const packetFrame = 90 * time.Millisecond

var spinner = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// link is the horizontal channel between two boxes.
type link struct {
	x0, x1, y int
}

func (l link) span() int { return l.x1 - l.x0 }

// packetX places a packet on the link. While running it travels in the
// given direction; when stopped it rests in the middle.
func (l link) packetX(running, rightward bool, offset int) int {
	if l.span() <= 0 {
		return l.x0
	}
	pos := l.span() / 2
	if running {
		pos = (frame(packetFrame) + offset) % (l.span() + 1)
	}
	if !rightward {
		pos = l.span() - pos
	}
	return l.x0 + pos
}

// endpoints draws a box on each side and returns the link between them.
func endpoints(c *canvas, left, right string, leftOn, rightOn bool) link {
	bw := min(18, max(10, c.w/4))
	bh := 5
	top := max(0, (c.h-bh)/2)

	ls, rs := stBorder, stBorder
	if leftOn {
		ls = stActive
	}
	if rightOn {
		rs = stActive
	}
	c.box(0, top, bw, bh, left, ls)
	c.box(c.w-bw, top, bw, bh, right, rs)
	return link{x0: bw + 1, x1: c.w - bw - 2, y: top + bh/2}
}

func drawPacket(c *canvas, l link, x int, label string, rightward bool, st *lipgloss.Style) {
	glyph := '▶'
	if !rightward {
		glyph = '◀'
	}
	c.set(x, l.y, glyph, st)
	lx := min(max(l.x0, x-len([]rune(label))/2), l.x1-len([]rune(label))+1)
	c.text(lx, l.y-1, label, st)
}

// HTTPRequest illustrates a browser resolving a name, sending a request
// and rendering the response.
func HTTPRequest() Renderer {
	return RendererFunc(renderHTTPRequest)
}

func renderHTTPRequest(p Props, width, height int) string {
	c := newCanvas(width, height)
	i := p.ActiveStepIndex

	browserOn := i <= 2 || i == 5
	serverOn := i >= 3
	l := endpoints(c, "Your Browser", "Web Server", browserOn, serverOn)

	if i >= 2 {
		c.hline(l.x0, l.x1, l.y, '─', stBorder)
	}

	switch i {
	case 0:
		c.text(2, l.y+3, "> google.com_", stText)
	case 1:
		dw := 11
		dx := (c.w - dw) / 2
		c.box(dx, 0, dw, 3, "DNS", stActive)
		c.vline(dx+dw/2, 3, l.y-2, '│', stDim)
		c.text(dx+dw/2+2, max(3, l.y-2), "google.com → 142.250.4.100", stPacket)
	case 2:
		drawPacket(c, l, l.packetX(p.IsRunning, true, 0), "GET /index.html", true, stPacket)
	case 3:
		sp := spinner[frame(packetFrame)%len(spinner)]
		if !p.IsRunning {
			sp = '⠿'
		}
		c.text(l.x1-8, l.y+3, string(sp)+" working", stAccent)
	case 4:
		drawPacket(c, l, l.packetX(p.IsRunning, false, 0), "200 OK + HTML", false, stOK)
	case 5:
		c.text(2, l.y+3, "▤ page rendered", stOK)
	}
	return c.String()
}

// WebSocket illustrates the upgrade handshake and full-duplex messaging.
func WebSocket() Renderer {
	return RendererFunc(renderWebSocket)
}

func renderWebSocket(p Props, width, height int) string {
	c := newCanvas(width, height)
	i := p.ActiveStepIndex

	open := i >= 3 && i <= 6
	l := endpoints(c, "Client", "Server", i != 2, i >= 2)

	switch {
	case open:
		c.hline(l.x0, l.x1, l.y, '═', stPrimary)
		c.centerText(min(c.h-1, l.y+3), "persistent connection", stPrimary)
	case i < 3 && i > 0:
		c.hline(l.x0, l.x1, l.y, '─', stBorder)
	case i == 7:
		c.hline(l.x0, l.x1, l.y, '╌', stDim)
	}

	switch i {
	case 1:
		drawPacket(c, l, l.packetX(p.IsRunning, true, 0), "Upgrade: websocket", true, stPacket)
	case 2:
		drawPacket(c, l, l.packetX(p.IsRunning, false, 0), "101 Switching Protocols", false, stOK)
	case 4:
		drawPacket(c, l, l.packetX(p.IsRunning, true, 0), "frame: hello", true, stPacket)
	case 5:
		drawPacket(c, l, l.packetX(p.IsRunning, false, 0), "push: update", false, stAccent)
	case 6:
		right := link{x0: l.x0, x1: l.x1, y: l.y - 1}
		left := link{x0: l.x0, x1: l.x1, y: l.y + 1}
		c.set(right.packetX(p.IsRunning, true, 0), right.y, '▶', stPacket)
		c.set(left.packetX(p.IsRunning, false, l.span()/3), left.y, '◀', stAccent)
	case 7:
		drawPacket(c, l, l.packetX(p.IsRunning, true, 0), "close frame", true, stDim)
	}
	return c.String()
}
