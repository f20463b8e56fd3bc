package machine

import "strings"

// ioState implements the buffered-line model of the `in` opcode: once a
// line is requested, the VM reads it in full (possibly handling a control
// command instead) and then serves it one byte at a time, including the
// trailing newline, so that programs which read character-by-character up
// to a newline still observe the same byte stream.
type ioState struct {
	term Terminal
	buf  []byte
}

func newIOState(term Terminal) *ioState {
	return &ioState{term: term}
}

func (s *ioState) writeByte(b byte) error {
	_, err := s.term.Write([]byte{b})
	return err
}

// nextByte serves the next byte of program input, reading and buffering a
// whole line first if the buffer is currently empty. Control-channel
// lines are intercepted and handled here, never reaching the buffer.
func (s *ioState) nextByte(m *Machine) (byte, Result) {
	for {
		if len(s.buf) > 0 {
			b := s.buf[0]
			s.buf = s.buf[1:]
			return b, continueResult()
		}

		line, err := s.term.ReadLine()
		if err != nil {
			return 0, failedResult(IOFailure, m.PC, err)
		}

		if strings.HasPrefix(line, "!") {
			if m.ctl.handle(line) {
				return 0, haltedResult()
			}
			continue
		}

		s.buf = append([]byte(line), '\n')
	}
}
