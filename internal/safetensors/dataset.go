package safetensors

import (
	"fmt"

	"github.com/example/go-rnn-prep/internal/runtime/tensor"
)

// Dataset tensor names.
const (
	InputsName  = "x"
	TargetsName = "y"
)

// WriteDataset stores a windowed dataset as the tensors "x" and "y".
func WriteDataset(path string, x, y *tensor.Tensor, metadata map[string]string) error {
	if x == nil || y == nil {
		return fmt.Errorf("safetensors: dataset requires x and y")
	}

	if x.Rank() == 0 || y.Rank() == 0 || x.Shape()[0] != y.Shape()[0] {
		return fmt.Errorf("safetensors: x shape %v and y shape %v disagree on rows", x.Shape(), y.Shape())
	}

	return WriteFile(path, []Tensor{
		{Name: InputsName, Shape: x.Shape(), Data: x.RawData()},
		{Name: TargetsName, Shape: y.Shape(), Data: y.RawData()},
	}, metadata)
}

// ReadDataset loads the "x" and "y" tensors written by WriteDataset.
func ReadDataset(path string) (*tensor.Tensor, *tensor.Tensor, error) {
	store, err := OpenStore(path)
	if err != nil {
		return nil, nil, err
	}

	x, err := store.Tensor(InputsName)
	if err != nil {
		return nil, nil, err
	}

	y, err := store.Tensor(TargetsName)
	if err != nil {
		return nil, nil, err
	}

	xt, err := tensor.New(x.Data, x.Shape)
	if err != nil {
		return nil, nil, fmt.Errorf("safetensors: x: %w", err)
	}

	yt, err := tensor.New(y.Data, y.Shape)
	if err != nil {
		return nil, nil, fmt.Errorf("safetensors: y: %w", err)
	}

	return xt, yt, nil
}
