package models

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract represents a compiled contract discovered in the Foundry output directory
type Contract struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	ArtifactPath string    `json:"artifactPath,omitempty"`
	Artifact     *Artifact `json:"artifact,omitempty"`
}

// ContractFactory is a deployable contract: interface plus creation bytecode
type ContractFactory struct {
	Name         string
	Path         string
	ArtifactPath string
	ABI          abi.ABI
	Bytecode     []byte
}

// BytecodeObject represents bytecode information in a compilation artifact
type BytecodeObject struct {
	Object         string         `json:"object"`
	SourceMap      string         `json:"sourceMap"`
	LinkReferences map[string]any `json:"linkReferences"`
}

// UnmarshalJSON accepts the Foundry object form as well as the plain hex string Hardhat writes
func (b *BytecodeObject) UnmarshalJSON(data []byte) error {
	var object string
	if err := json.Unmarshal(data, &object); err == nil {
		*b = BytecodeObject{Object: object}
		return nil
	}

	type bytecodeObject BytecodeObject
	var decoded bytecodeObject
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*b = BytecodeObject(decoded)
	return nil
}

// Artifact represents a Foundry or Hardhat compilation artifact
type Artifact struct {
	ABI               json.RawMessage   `json:"abi"`
	Bytecode          BytecodeObject    `json:"bytecode"`
	DeployedBytecode  BytecodeObject    `json:"deployedBytecode"`
	MethodIdentifiers map[string]string `json:"methodIdentifiers"`
	Metadata          ArtifactMetadata  `json:"metadata"`

	// Hardhat artifacts name the contract at the top level
	Format         string         `json:"_format,omitempty"`
	ContractName   string         `json:"contractName,omitempty"`
	SourceName     string         `json:"sourceName,omitempty"`
	LinkReferences map[string]any `json:"linkReferences,omitempty"`
}

// Identity returns the source path and contract name the artifact was compiled from
func (a *Artifact) Identity() (source, name string) {
	for source, name := range a.Metadata.Settings.CompilationTarget {
		return source, name // There should only be one entry
	}
	return a.SourceName, a.ContractName
}

// ArtifactMetadata represents the metadata section of a Foundry artifact
type ArtifactMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Language string `json:"language"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}
