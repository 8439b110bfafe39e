package machine

import (
	"testing"
	"time"

	"github.com/mastercactapus/drawbot/coord"
	"github.com/mastercactapus/drawbot/gcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSettings = `
xdim: 300
ydim: "200.5"
flavor: GRBL
name: drawbot
port: /dev/ttyUSB0
baud_rate: 115200
ack_delay: 5ms
`

func TestParseSettings(t *testing.T) {
	s, err := ParseSettings([]byte(testSettings), nil)
	require.NoError(t, err)
	assert.Equal(t, Profile{
		Dimensions: coord.Vec2D{X: 300, Y: 200.5},
		Flavor:     gcode.GRBL,
		Device:     "drawbot",
		Port:       "/dev/ttyUSB0",
		BaudRate:   115200,
	}, s.Profile)
	assert.Equal(t, 5*time.Millisecond, s.Transport.AckDelay)
	assert.Equal(t, AckSoft, s.Transport.AckPolicy)
}

func TestParseSettings_Env(t *testing.T) {
	s, err := ParseSettings([]byte(testSettings), []string{
		"APP_FLAVOR=marlin",
		"APP_PORT=/dev/ttyACM1",
		"APP_ACK_POLICY=abort",
		"HOME=/root",
	})
	require.NoError(t, err)
	assert.Equal(t, gcode.Marlin, s.Flavor)
	assert.Equal(t, "/dev/ttyACM1", s.Port)
	assert.Equal(t, AckAbort, s.Transport.AckPolicy)
}

func TestParseSettings_Errors(t *testing.T) {
	_, err := ParseSettings([]byte("xdim: 1\n"), nil)
	assert.EqualError(t, err, "missing config value: ydim")

	_, err = ParseSettings([]byte(testSettings), []string{"APP_FLAVOR=smoothie"})
	assert.ErrorIs(t, err, gcode.ErrUnknownFlavor)

	_, err = ParseSettings([]byte(testSettings), []string{"APP_BAUD_RATE=fast"})
	assert.Error(t, err)

	_, err = ParseSettings([]byte(testSettings), []string{"APP_XDIM=0"})
	assert.Error(t, err)
}
