package spikecount

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// QuantParams are the affine quantization parameters of an int8 or uint8
// Model output tensor, where real = (quantized - ZeroPoint) * Scale
type QuantParams struct {
	Scale     float32
	ZeroPoint int32
}

// WheatOutputQuant are the output quantization parameters of the int8
// exported wheat spike YOLOv5s Model
var WheatOutputQuant = QuantParams{
	Scale:     0.00828352477401495,
	ZeroPoint: 5,
}

// DequantizeUint8 converts a uint8 quantized output buffer to float32
func DequantizeUint8(buf []uint8, q QuantParams) []float32 {

	out := make([]float32, len(buf))
	zp := float32(q.ZeroPoint)

	for i, v := range buf {
		out[i] = (float32(v) - zp) * q.Scale
	}

	return out
}

// DequantizeInt8 converts an int8 quantized output buffer to float32
func DequantizeInt8(buf []int8, q QuantParams) []float32 {

	out := make([]float32, len(buf))
	zp := float32(q.ZeroPoint)

	for i, v := range buf {
		out[i] = (float32(v) - zp) * q.Scale
	}

	return out
}

// ReadTensor reads a raw output tensor stored as consecutive little endian
// float32 values, as dumped by the host after inference
func ReadTensor(r io.Reader) ([]float32, error) {

	data, err := io.ReadAll(r)

	if err != nil {
		return nil, fmt.Errorf("error reading tensor: %w", err)
	}

	if len(data)%4 != 0 {
		return nil, fmt.Errorf("tensor data length %d is not a multiple of 4 bytes", len(data))
	}

	out := make([]float32, len(data)/4)

	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}

	return out, nil
}

// LoadTensor reads a raw float32 output tensor from the given file
func LoadTensor(file string) ([]float32, error) {

	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	defer f.Close()

	return ReadTensor(f)
}

// WriteTensor writes the tensor as consecutive little endian float32 values
func WriteTensor(w io.Writer, tensor []float32) error {

	buf := make([]byte, len(tensor)*4)

	for i, v := range tensor {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}

	_, err := w.Write(buf)

	return err
}
