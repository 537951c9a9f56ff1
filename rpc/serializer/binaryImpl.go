package serializer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ValentinKolb/bKV/lib/kv"
	"github.com/ValentinKolb/bKV/rpc/common"
)

// NewBinarySerializer creates a new serializer using a custom binary format
// optimized for speed and efficiency
func NewBinarySerializer() IRPCSerializer {
	return &binarySerializerImpl{}
}

// binarySerializerImpl implements IRPCSerializer using a custom binary format
type binarySerializerImpl struct {
}

// Bit flags to indicate which optional fields are present
const (
	hasMods    byte = 1 << 0
	hasBegin   byte = 1 << 1
	hasEnd     byte = 1 << 2
	hasHead    byte = 1 << 3
	hasSize    byte = 1 << 4
	hasEntries byte = 1 << 5
	hasDiff    byte = 1 << 6
	hasErr     byte = 1 << 7
)

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

// Format: 1 byte message type, 1 byte field flags, then each present field
// in flag order. Strings and lists are length-prefixed (uint32, big endian).
func (b binarySerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(byte(msg.MsgType))

	var flags byte
	if len(msg.Mods) > 0 {
		flags |= hasMods
	}
	if msg.Begin > 0 {
		flags |= hasBegin
	}
	if msg.End > 0 {
		flags |= hasEnd
	}
	if msg.Head > 0 {
		flags |= hasHead
	}
	if msg.Size > 0 {
		flags |= hasSize
	}
	if len(msg.Entries) > 0 {
		flags |= hasEntries
	}
	if len(msg.Diff) > 0 {
		flags |= hasDiff
	}
	if msg.Err != "" {
		flags |= hasErr
	}
	buf.WriteByte(flags)

	if flags&hasMods != 0 {
		writeModList(&buf, msg.Mods)
	}
	if flags&hasBegin != 0 {
		writeUint64(&buf, msg.Begin)
	}
	if flags&hasEnd != 0 {
		writeUint64(&buf, msg.End)
	}
	if flags&hasHead != 0 {
		writeUint32(&buf, msg.Head)
	}
	if flags&hasSize != 0 {
		writeUint64(&buf, msg.Size)
	}
	if flags&hasEntries != 0 {
		writeModList(&buf, msg.Entries)
	}
	if flags&hasDiff != 0 {
		writeModList(&buf, msg.Diff)
	}
	if flags&hasErr != 0 {
		writeString(&buf, msg.Err)
	}

	return buf.Bytes(), nil
}

func (b binarySerializerImpl) Deserialize(data []byte, msg *common.Message) error {
	r := bytes.NewReader(data)

	msgType, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("failed to read message type: %w", err)
	}
	msg.MsgType = common.MessageType(msgType)

	flags, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("failed to read field flags: %w", err)
	}

	if flags&hasMods != 0 {
		if msg.Mods, err = readModList(r); err != nil {
			return fmt.Errorf("failed to read mods: %w", err)
		}
	}
	if flags&hasBegin != 0 {
		if msg.Begin, err = readUint64(r); err != nil {
			return fmt.Errorf("failed to read begin: %w", err)
		}
	}
	if flags&hasEnd != 0 {
		if msg.End, err = readUint64(r); err != nil {
			return fmt.Errorf("failed to read end: %w", err)
		}
	}
	if flags&hasHead != 0 {
		if msg.Head, err = readUint32(r); err != nil {
			return fmt.Errorf("failed to read head: %w", err)
		}
	}
	if flags&hasSize != 0 {
		if msg.Size, err = readUint64(r); err != nil {
			return fmt.Errorf("failed to read size: %w", err)
		}
	}
	if flags&hasEntries != 0 {
		if msg.Entries, err = readModList(r); err != nil {
			return fmt.Errorf("failed to read entries: %w", err)
		}
	}
	if flags&hasDiff != 0 {
		if msg.Diff, err = readModList(r); err != nil {
			return fmt.Errorf("failed to read diff: %w", err)
		}
	}
	if flags&hasErr != 0 {
		if msg.Err, err = readString(r); err != nil {
			return fmt.Errorf("failed to read err: %w", err)
		}
	}

	if r.Len() != 0 {
		return fmt.Errorf("trailing garbage: %d bytes left after message", r.Len())
	}

	return nil
}

// --------------------------------------------------------------------------
// Encoding Helpers
// --------------------------------------------------------------------------

func writeUint32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	buf.Write(tmp[:])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUint32(buf, uint32(len(s)))
	buf.WriteString(s)
}

// writeModList encodes a list of modifications as a uint32 count followed
// by op byte, key and value per modification.
func writeModList(buf *bytes.Buffer, mods []kv.Modification) {
	writeUint32(buf, uint32(len(mods)))
	for _, m := range mods {
		buf.WriteByte(byte(m.Op))
		writeString(buf, m.Key)
		writeString(buf, m.Value)
	}
}

// --------------------------------------------------------------------------
// Decoding Helpers
// --------------------------------------------------------------------------

func readUint32(r *bytes.Reader) (uint32, error) {
	var tmp [4]byte
	if _, err := io.ReadFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(tmp[:]), nil
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var tmp [8]byte
	if _, err := io.ReadFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(tmp[:]), nil
}

func readString(r *bytes.Reader) (string, error) {
	length, err := readUint32(r)
	if err != nil {
		return "", err
	}
	if uint32(r.Len()) < length {
		return "", fmt.Errorf("string length %d exceeds remaining payload %d", length, r.Len())
	}
	b := make([]byte, length)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func readModList(r *bytes.Reader) ([]kv.Modification, error) {
	count, err := readUint32(r)
	if err != nil {
		return nil, err
	}

	// every modification occupies at least 9 bytes on the wire
	if uint64(count)*9 > uint64(r.Len()) {
		return nil, fmt.Errorf("modification count %d exceeds remaining payload %d", count, r.Len())
	}

	mods := make([]kv.Modification, 0, count)
	for i := uint32(0); i < count; i++ {
		op, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if kv.Op(op) != kv.OpUpdate && kv.Op(op) != kv.OpDelete {
			return nil, fmt.Errorf("unknown modification op: %d", op)
		}

		key, err := readString(r)
		if err != nil {
			return nil, err
		}
		value, err := readString(r)
		if err != nil {
			return nil, err
		}

		mods = append(mods, kv.Modification{Op: kv.Op(op), Key: key, Value: value})
	}

	return mods, nil
}
