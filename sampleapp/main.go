package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/wirelite/wirelite"
)

func main() {
	data := demoPayload()
	source := "built-in demo payload"
	if len(os.Args) > 1 {
		var err error
		data, err = os.ReadFile(os.Args[1])
		if err != nil {
			log.Fatalf("Failed to read %s: %v", os.Args[1], err)
		}
		source = os.Args[1]
	}

	fields, err := wirelite.Parse(data)
	if err != nil {
		log.Fatalf("Failed to parse wire data: %v", err)
	}

	fmt.Printf("Decoded %d bytes from %s:\n", len(data), source)
	printFields(fields, "")
}

func printFields(fields map[string]interface{}, indent string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := fields[k].(type) {
		case []interface{}:
			for i, entry := range v {
				printEntry(fmt.Sprintf("%s[%d]", k, i), entry, indent)
			}
		default:
			printEntry(k, v, indent)
		}
	}
}

func printEntry(name string, entry interface{}, indent string) {
	m, ok := entry.(map[string]interface{})
	if !ok {
		fmt.Printf("%s%s = %v\n", indent, name, entry)
		return
	}

	if group, ok := m["value"].(map[string]interface{}); ok {
		fmt.Printf("%s%s (%s):\n", indent, name, m["type"])
		printFields(group, indent+"  ")
		return
	}

	value := m["value"]
	if b, ok := value.([]byte); ok {
		value = fmt.Sprintf("%q", b)
	}
	fmt.Printf("%s%s (%s) = %v\n", indent, name, m["type"], value)
}

// demoPayload is a hand-assembled wire message: a varint, a string, a
// float and a repeated varint.
func demoPayload() []byte {
	return []byte{
		0x08, 0x96, 0x01, // field 1, varint 150
		0x12, 0x0b, 'h', 'e', 'l', 'l', 'o', ',', ' ', 'w', 'i', 'r', 'e', // field 2, bytes
		0x1d, 0x00, 0x00, 0x28, 0x42, // field 3, fixed32 float 42.0
		0x20, 0x01, // field 4, varint 1
		0x20, 0x02, // field 4, varint 2
	}
}
