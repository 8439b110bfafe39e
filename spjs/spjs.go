// Package spjs is a client for Serial Port JSON Server, which exposes
// serial ports over a websocket.
package spjs

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

// Client maintains a websocket connection to an SPJS instance,
// reconnecting as needed.
type Client struct {
	url string

	outgoing  chan message
	incomming chan interface{}
	closeCh   chan struct{}
}

type message struct {
	done    chan struct{}
	payload []byte
}

type DataFrame struct {
	Port string `json:"P"`
	Data string `json:"D"`
}
type CmdStatus struct {
	Cmd        string
	QueueCount int `json:"QCnt"`
	Type       []string
	Data       []string `json:"D"`
	ID         string   `json:"Id"`
}

type ErrorMessage struct {
	Error string
}
type SerialPortList struct {
	SerialPorts []SerialPort
}
type SerialPort struct {
	Name            string
	Friendly        string
	IsOpen          bool
	Baud            int
	BufferAlgorithm string
}

// Dial starts a client for the websocket at url. Connection happens
// in the background.
func Dial(url string) *Client {
	c := &Client{
		url:       url,
		outgoing:  make(chan message, 1000),
		incomming: make(chan interface{}, 1000),
		closeCh:   make(chan struct{}),
	}

	go c.loop()

	return c
}

// Messages returns parsed server messages: *DataFrame, *CmdStatus,
// *SerialPortList or *ErrorMessage.
func (c *Client) Messages() <-chan interface{} {
	return c.incomming
}

// Close stops reconnecting and drops the connection.
func (c *Client) Close() error {
	close(c.closeCh)
	return nil
}

func parseMessage(data []byte) (val interface{}, err error) {
	var msg map[string]json.RawMessage
	err = json.Unmarshal(data, &msg)
	if err != nil {
		return nil, err
	}
	check := func(fieldName string, v interface{}) bool {
		if msg[fieldName] == nil {
			return false
		}
		val = v
		err = json.Unmarshal(data, val)
		return true
	}
	if check("Error", &ErrorMessage{}) {
		return
	}
	if check("SerialPorts", &SerialPortList{}) {
		return
	}
	if check("Cmd", &CmdStatus{}) {
		return
	}
	if check("D", &DataFrame{}) {
		return
	}

	return nil, errors.New("unknown message: " + string(data))
}

func (c *Client) readLoop(ws *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			log.Println("ERROR: spjs read:", err)
			return
		}
		if !bytes.HasPrefix(data, []byte("{")) {
			// ignore echo messages
			continue
		}
		val, err := parseMessage(data)
		if err != nil {
			log.Println("ERROR: spjs parse:", err)
			continue
		}
		select {
		case c.incomming <- val:
		default:
			log.Println("WARN: spjs message dropped, reader too slow")
		}
	}
}

func (c *Client) loop() {
	var nextUp message

reconnect:
	for {
		select {
		case <-c.closeCh:
			return
		default:
		}
		log.Println("Connecting to", c.url)
		ws, _, err := websocket.DefaultDialer.Dial(c.url, nil)
		if err != nil {
			log.Println("ERROR: spjs connect:", err)
			time.Sleep(3 * time.Second)
			continue
		}
		log.Println("Connected.")
		ch := make(chan struct{})
		go c.readLoop(ws, ch)
		go c.WriteString("list") // refresh list on reconnect

		for {
			if nextUp.done != nil {
				err = ws.WriteMessage(websocket.TextMessage, nextUp.payload)
				if err != nil {
					log.Println("ERROR: spjs send:", err)
					ws.Close()
					continue reconnect
				}
				close(nextUp.done)
				nextUp.done = nil
			}

			select {
			case <-c.closeCh:
				ws.Close()
				return
			case <-ch:
				continue reconnect
			case nextUp = <-c.outgoing:
			}
		}
	}
}

// WriteString sends a raw command and returns once it is on the wire.
func (c *Client) WriteString(data string) error {
	ch := make(chan struct{})
	select {
	case c.outgoing <- message{done: ch, payload: []byte(data)}:
	case <-c.closeCh:
		return errors.New("spjs client closed")
	}
	select {
	case <-ch:
		return nil
	case <-c.closeCh:
		return errors.New("spjs client closed")
	}
}

// Send writes data to port through the server's queue.
func (c *Client) Send(port, data string) error {
	return c.WriteString("send " + port + " " + data)
}

// SendNoBuf writes data to port, bypassing the server's queue.
func (c *Client) SendNoBuf(port, data string) error {
	return c.WriteString("sendnobuf " + port + " " + data)
}

// Open asks the server to open port with the given buffer algorithm.
func (c *Client) Open(port string, baud int, algorithm string) error {
	return c.WriteString("open " + port + " " + strconv.Itoa(baud) + " " + algorithm)
}
