package spikecount

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Labels is the ordered table of class names the Model was trained with,
// indexed by class ID
type Labels []string

// LabelFor returns the class name for the given class ID and false if the
// ID has no entry in the table
func (l Labels) LabelFor(id int) (string, bool) {
	if id < 0 || id >= len(l) {
		return "", false
	}

	return l[id], true
}

// IndexOf returns the class ID of the given label name or -1 if it is not
// in the table
func (l Labels) IndexOf(name string) int {
	for i, label := range l {
		if label == name {
			return i
		}
	}

	return -1
}

// LoadLabels reads the labels used to train the Model from the given text file.
// It should contain one label per line.  Blank lines are skipped.
func LoadLabels(file string) (Labels, error) {

	// open the file
	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	defer f.Close()

	// create a scanner to read the file.
	scanner := bufio.NewScanner(f)

	var labels Labels

	// read and trim each line
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		labels = append(labels, line)
	}

	// check for errors during scanning
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return labels, nil
}
