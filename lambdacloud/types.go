package lambdacloud

import (
	"time"

	"github.com/shopspring/decimal"
)

type InstanceStatus string

const (
	InstanceStatusBooting     InstanceStatus = "booting"
	InstanceStatusActive      InstanceStatus = "active"
	InstanceStatusUnhealthy   InstanceStatus = "unhealthy"
	InstanceStatusTerminating InstanceStatus = "terminating"
	InstanceStatusTerminated  InstanceStatus = "terminated"
)

type Region struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Specs struct {
	VCPUs      int `json:"vcpus"`
	MemoryGiB  int `json:"memory_gib"`
	StorageGiB int `json:"storage_gib"`
	GPUs       int `json:"gpus,omitempty"`
}

// InstanceType describes a machine configuration. The API has sent the hourly
// price both as a JSON number and as a numeric string; decimal accepts either.
type InstanceType struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	GPUDescription    string          `json:"gpu_description,omitempty"`
	PriceCentsPerHour decimal.Decimal `json:"price_cents_per_hour"`
	Specs             Specs           `json:"specs"`
}

// HourlyPrice returns the price in dollars.
func (t InstanceType) HourlyPrice() decimal.Decimal {
	return t.PriceCentsPerHour.Shift(-2)
}

type InstanceTypeInfo struct {
	InstanceType                 InstanceType `json:"instance_type"`
	RegionsWithCapacityAvailable []Region     `json:"regions_with_capacity_available"`
}

// HasCapacity reports whether the type can currently be launched anywhere.
func (i InstanceTypeInfo) HasCapacity() bool {
	return len(i.RegionsWithCapacityAvailable) > 0
}

type Instance struct {
	ID              string         `json:"id"`
	Name            *string        `json:"name"`
	IP              string         `json:"ip,omitempty"`
	PrivateIP       string         `json:"private_ip,omitempty"`
	Status          InstanceStatus `json:"status"`
	SSHKeyNames     []string       `json:"ssh_key_names"`
	FileSystemNames []string       `json:"file_system_names"`
	Region          Region         `json:"region"`
	InstanceType    InstanceType   `json:"instance_type"`
	Hostname        string         `json:"hostname,omitempty"`
	JupyterToken    string         `json:"jupyter_token,omitempty"`
	JupyterURL      string         `json:"jupyter_url,omitempty"`
	IsReserved      bool           `json:"is_reserved,omitempty"`
}

type SSHKey struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PublicKey string `json:"public_key"`
	// PrivateKey is only returned once, when the server generated the key pair.
	PrivateKey *string `json:"private_key,omitempty"`
}

type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

type FileSystem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Created    time.Time `json:"created"`
	CreatedBy  User      `json:"created_by"`
	MountPoint string    `json:"mount_point"`
	Region     Region    `json:"region"`
	IsInUse    bool      `json:"is_in_use"`
	BytesUsed  int64     `json:"bytes_used,omitempty"`
}

// LaunchRequest is the launch payload. Optional fields are pointers and are
// left out of the JSON body entirely when nil.
type LaunchRequest struct {
	RegionName       string   `json:"region_name"        validate:"required"`
	InstanceTypeName string   `json:"instance_type_name" validate:"required"`
	SSHKeyNames      []string `json:"ssh_key_names"      validate:"len=1,dive,required"`
	FileSystemNames  []string `json:"file_system_names"  validate:"max=1,dive,required"`
	Quantity         *int     `json:"quantity,omitempty" validate:"omitempty,gte=1"`
	Name             *string  `json:"name,omitempty"     validate:"omitempty,max=64"`
}

type AddSSHKeyRequest struct {
	Name      string  `json:"name"                 validate:"required,max=64"`
	PublicKey *string `json:"public_key,omitempty"`
}

type instanceIDsRequest struct {
	InstanceIDs []string `json:"instance_ids" validate:"min=1,dive,required"`
}

type envelope[T any] struct {
	Data T `json:"data"`
}

type launchResult struct {
	InstanceIDs []string `json:"instance_ids"`
}

type terminateResult struct {
	TerminatedInstances []Instance `json:"terminated_instances"`
}

type restartResult struct {
	RestartedInstances []Instance `json:"restarted_instances"`
}
