// Copyright 2023-2024 daviszhen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"encoding/binary"
	"io"
	"os"
)

// Serialize and Deserialize are the sink/source interfaces pkg/wireformat
// writes against. A FileSerialize/FileDeserialize pair lets a value
// stream round-trip through a file; a BufSerialize/BufDeserialize pair
// keeps it in memory.
type Serialize interface {
	WriteData(buffer []byte, len int) error
}

type Deserialize interface {
	ReadData(buffer []byte, len int) error
}

func WriteFixed[T any](value T, serial Serialize) error {
	buf := make([]byte, 0, 16)
	switch v := any(value).(type) {
	case uint8:
		buf = append(buf, v)
	case int8:
		buf = append(buf, byte(v))
	case uint16:
		buf = binary.BigEndian.AppendUint16(buf, v)
	case int16:
		buf = binary.BigEndian.AppendUint16(buf, uint16(v))
	case uint32:
		buf = binary.BigEndian.AppendUint32(buf, v)
	case int32:
		buf = binary.BigEndian.AppendUint32(buf, uint32(v))
	case uint64:
		buf = binary.BigEndian.AppendUint64(buf, v)
	case int64:
		buf = binary.BigEndian.AppendUint64(buf, uint64(v))
	case bool:
		if v {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	default:
		panic("util.WriteFixed: unsupported type")
	}
	return serial.WriteData(buf, len(buf))
}

func ReadFixed[T any](value *T, deserial Deserialize) error {
	var width int
	switch any(*value).(type) {
	case uint8, int8, bool:
		width = 1
	case uint16, int16:
		width = 2
	case uint32, int32:
		width = 4
	case uint64, int64:
		width = 8
	default:
		panic("util.ReadFixed: unsupported type")
	}
	buf := make([]byte, width)
	if err := deserial.ReadData(buf, width); err != nil {
		return err
	}
	switch p := any(value).(type) {
	case *uint8:
		*p = buf[0]
	case *int8:
		*p = int8(buf[0])
	case *bool:
		*p = buf[0] != 0
	case *uint16:
		*p = binary.BigEndian.Uint16(buf)
	case *int16:
		*p = int16(binary.BigEndian.Uint16(buf))
	case *uint32:
		*p = binary.BigEndian.Uint32(buf)
	case *int32:
		*p = int32(binary.BigEndian.Uint32(buf))
	case *uint64:
		*p = binary.BigEndian.Uint64(buf)
	case *int64:
		*p = int64(binary.BigEndian.Uint64(buf))
	}
	return nil
}

func WriteBytes(b []byte, serial Serialize) error {
	if err := WriteFixed(uint32(len(b)), serial); err != nil {
		return err
	}
	if len(b) > 0 {
		return serial.WriteData(b, len(b))
	}
	return nil
}

func ReadBytes(deserial Deserialize) ([]byte, error) {
	var l uint32
	if err := ReadFixed(&l, deserial); err != nil {
		return nil, err
	}
	if l == 0 {
		return nil, nil
	}
	buf := make([]byte, l)
	if err := deserial.ReadData(buf, int(l)); err != nil {
		return nil, err
	}
	return buf, nil
}

func WriteString(s string, serial Serialize) error {
	return WriteBytes([]byte(s), serial)
}

func ReadString(deserial Deserialize) (string, error) {
	b, err := ReadBytes(deserial)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var _ Serialize = new(FileSerialize)

type FileSerialize struct {
	file *os.File
}

func NewFileSerialize(name string) (*FileSerialize, error) {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_SYNC, 0775)
	if err != nil {
		return nil, err
	}
	return &FileSerialize{file: f}, nil
}

func (serial *FileSerialize) WriteData(buffer []byte, length int) error {
	var wlen int
	for wlen < length {
		n, err := serial.file.Write(buffer[wlen:length])
		if err != nil {
			return err
		}
		wlen += n
	}
	return nil
}

func (serial *FileSerialize) Close() error {
	_ = serial.file.Sync()
	return serial.file.Close()
}

var _ Deserialize = new(FileDeserialize)

type FileDeserialize struct {
	file *os.File
}

func NewFileDeserialize(name string) (*FileDeserialize, error) {
	f, err := os.OpenFile(name, os.O_RDONLY, 0775)
	if err != nil {
		return nil, err
	}
	return &FileDeserialize{file: f}, nil
}

func (deserial *FileDeserialize) ReadData(buffer []byte, length int) error {
	var rlen int
	for rlen < length {
		n, err := deserial.file.Read(buffer[rlen:length])
		if err != nil {
			return err
		}
		rlen += n
	}
	return nil
}

func (deserial *FileDeserialize) Close() error {
	return deserial.file.Close()
}

// BufSerialize adapts an in-memory byte slice builder to Serialize.
type BufSerialize struct {
	Buf []byte
}

func (serial *BufSerialize) WriteData(buffer []byte, length int) error {
	serial.Buf = append(serial.Buf, buffer[:length]...)
	return nil
}

// BufDeserialize adapts an in-memory byte slice to Deserialize, advancing
// an internal cursor on each read.
type BufDeserialize struct {
	Buf    []byte
	Offset int
}

func (deserial *BufDeserialize) ReadData(buffer []byte, length int) error {
	if deserial.Offset+length > len(deserial.Buf) {
		return io.ErrUnexpectedEOF
	}
	copy(buffer, deserial.Buf[deserial.Offset:deserial.Offset+length])
	deserial.Offset += length
	return nil
}
