package spjs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessage(t *testing.T) {
	val, err := parseMessage([]byte(`{"P":"/dev/ttyUSB0","D":"ok\n"}`))
	require.NoError(t, err)
	assert.Equal(t, &DataFrame{Port: "/dev/ttyUSB0", Data: "ok\n"}, val)

	val, err = parseMessage([]byte(`{"SerialPorts":[{"Name":"/dev/ttyUSB0","IsOpen":true,"Baud":115200}]}`))
	require.NoError(t, err)
	list, ok := val.(*SerialPortList)
	require.True(t, ok)
	require.Len(t, list.SerialPorts, 1)
	assert.True(t, list.SerialPorts[0].IsOpen)
	assert.Equal(t, 115200, list.SerialPorts[0].Baud)

	val, err = parseMessage([]byte(`{"Cmd":"Complete","Id":"cmd_1","QCnt":0}`))
	require.NoError(t, err)
	assert.Equal(t, "Complete", val.(*CmdStatus).Cmd)

	val, err = parseMessage([]byte(`{"Error":"port busy"}`))
	require.NoError(t, err)
	assert.Equal(t, "port busy", val.(*ErrorMessage).Error)

	_, err = parseMessage([]byte(`{"Other":1}`))
	assert.Error(t, err)
}
