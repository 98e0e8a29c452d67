package wirelite

import (
	"fmt"
	"log"

	"github.com/wirelite/wirelite/wire"
)

// Example demonstrates schema-less parsing of raw wire bytes.
func ExampleParse() {
	data := []byte{
		0x08, 0x96, 0x01, // field 1, varint 150
		0x12, 0x05, 'h', 'e', 'l', 'l', 'o', // field 2, bytes "hello"
	}

	fields, err := Parse(data)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(fields)
	// Output: map[field_1:map[type:varint value:150] field_2:map[type:bytes value:[104 101 108 108 111]]]
}

// Example demonstrates driving the field-level reader directly.
func Example_fieldReader() {
	data := []byte{
		0x0d, 0x00, 0x00, 0x28, 0x42, // field 1, fixed32 float 42.0
		0x10, 0x03, // field 2, varint 3
	}

	r := wire.NewBytesReader(data)
	for {
		more, err := r.HasNext()
		if err != nil {
			log.Fatal(err)
		}
		if !more {
			break
		}

		num, err := r.ReadTag()
		if err != nil {
			log.Fatal(err)
		}

		switch r.PeekType() {
		case wire.WireFixed32:
			f, err := r.ReadFloat32()
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("field %d: %v\n", num, f)
		case wire.WireVarint:
			v, err := r.ReadVarint64()
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("field %d: %d\n", num, v)
		default:
			if _, err := r.SkipField(num); err != nil {
				log.Fatal(err)
			}
		}
	}

	// Output:
	// field 1: 42
	// field 2: 3
}
