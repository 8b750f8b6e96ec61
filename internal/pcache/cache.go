package pcache

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/docker/docker/pkg/locker"
	lru "github.com/hashicorp/golang-lru"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/sirupsen/logrus"

	"github.com/go-parti/parti/logging"
)

// A Serializable value can be flattened to bytes for disk spill
type Serializable interface {
	ToBytes() ([]byte, error)
}

// A Cache is a read-through cache for loaded partition values, keyed by
// partition key. Values evicted from memory are compressed and spilled to
// disk when a disk path is configured, so that re-reads of a large dataset
// do not reload every partition from its backing resource.
type Cache interface {
	Add(key string, value interface{})   // Add caches the value for a partition key
	Get(key string) (interface{}, error) // Get returns the cached value for a partition key, or an error on a miss
	Destroy()                            // Destroy releases the cache and removes any spilled files
}

// Codec selects the compression used for spilled values
type Codec string

const (
	// Zstd compresses spilled values with zstandard
	Zstd Codec = "zstd"
	// LZ4 compresses spilled values with lz4
	LZ4 Codec = "lz4"
)

// Config configures an LRU Cache
type Config struct {
	Size      int                                  // Maximum number of values held uncompressed in memory
	DiskPath  string                               // Directory for compressed spill files. Empty disables spill: evicted values are simply dropped.
	Codec     Codec                                // Compression for spilled values. Defaults to Zstd.
	FromBytes func([]byte) (interface{}, error)    // Rehydrates a spilled value. Required when DiskPath is set.
}

type lruCache struct {
	config       *Config
	plocks       *locker.Locker
	entries      *lru.Cache
	compressor   *zstd.Encoder
	decompressor *zstd.Decoder
	spilledLock  sync.Mutex
	spilled      map[string]bool
	log          *logrus.Entry
}

// NewLRU produces an LRU Cache
func NewLRU(config *Config) (Cache, error) {
	if config.Size < 1 {
		return nil, fmt.Errorf("cache size %d must be at least 1", config.Size)
	}
	if config.DiskPath != "" && config.FromBytes == nil {
		return nil, fmt.Errorf("FromBytes is required when spilling to disk")
	}
	if config.Codec == "" {
		config.Codec = Zstd
	}
	c := &lruCache{
		config:  config,
		plocks:  locker.New(),
		spilled: make(map[string]bool),
		log:     logging.CreateLogger("pcache", logging.WarnLevel),
	}
	if config.Codec == Zstd {
		compressor, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, err
		}
		decompressor, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		c.compressor = compressor
		c.decompressor = decompressor
	} else if config.Codec != LZ4 {
		return nil, fmt.Errorf("unknown codec %q", config.Codec)
	}
	entries, err := lru.NewWithEvict(config.Size, c.onEvict)
	if err != nil {
		return nil, err
	}
	c.entries = entries
	return c, nil
}

// Add caches the value for a partition key
func (c *lruCache) Add(key string, value interface{}) {
	c.plocks.Lock(key)
	defer c.plocks.Unlock(key)
	c.entries.Add(key, value)
}

// Get returns the cached value for a partition key. In-memory hits are
// returned directly; spilled values are rehydrated, re-admitted to memory and
// their spill file removed. A miss is an error.
func (c *lruCache) Get(key string) (interface{}, error) {
	c.plocks.Lock(key)
	defer c.plocks.Unlock(key)
	if value, ok := c.entries.Get(key); ok {
		return value, nil
	}
	value, err := c.getFromDisk(key)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, value)
	return value, nil
}

// Destroy purges the cache and removes any spilled files
func (c *lruCache) Destroy() {
	c.spilledLock.Lock()
	spillPaths := make([]string, 0, len(c.spilled))
	for key := range c.spilled {
		spillPaths = append(spillPaths, c.spillPath(key))
	}
	c.config.DiskPath, c.spilled = "", make(map[string]bool) // disarm spill before purging
	c.spilledLock.Unlock()
	for _, spillPath := range spillPaths {
		if err := os.Remove(spillPath); err != nil && !os.IsNotExist(err) {
			c.log.Warnf("Unable to remove spill file %s: %v", spillPath, err)
		}
	}
	c.entries.Purge()
	if c.compressor != nil {
		c.compressor.Close()
	}
	if c.decompressor != nil {
		c.decompressor.Close()
	}
}

// onEvict spills an evicted value to disk, when configured to do so
func (c *lruCache) onEvict(key interface{}, value interface{}) {
	if c.config.DiskPath == "" {
		return
	}
	pkey, ok := key.(string)
	if !ok {
		c.log.Warnf("Unable to spill partition due to key casting issue: %v", key)
		return
	}
	ser, ok := value.(Serializable)
	if !ok {
		c.log.WithField("key", pkey).Warnf("Evicted value of type %T is not serializable; dropping", value)
		return
	}
	buff, err := ser.ToBytes()
	if err != nil {
		c.log.WithField("key", pkey).Warnf("Unable to serialize evicted partition: %v", err)
		return
	}
	compressed, err := c.compress(buff)
	if err != nil {
		c.log.WithField("key", pkey).Warnf("Unable to compress evicted partition: %v", err)
		return
	}
	if err := ioutil.WriteFile(c.spillPath(pkey), compressed, 0644); err != nil {
		c.log.WithField("key", pkey).Warnf("Unable to spill partition to disk: %v", err)
		return
	}
	c.spilledLock.Lock()
	c.spilled[pkey] = true
	c.spilledLock.Unlock()
}

// getFromDisk rehydrates a spilled value and removes its spill file
func (c *lruCache) getFromDisk(key string) (interface{}, error) {
	c.spilledLock.Lock()
	onDisk := c.spilled[key]
	c.spilledLock.Unlock()
	if c.config.DiskPath == "" || !onDisk {
		return nil, fmt.Errorf("partition %s is not in the cache", key)
	}
	spillPath := c.spillPath(key)
	compressed, err := ioutil.ReadFile(spillPath)
	if err != nil {
		return nil, fmt.Errorf("unable to load disk-swapped partition %s: %v", key, err)
	}
	defer func() {
		if err := os.Remove(spillPath); err != nil {
			c.log.WithField("key", key).Warnf("Unable to remove spill file: %v", err)
		}
		c.spilledLock.Lock()
		delete(c.spilled, key)
		c.spilledLock.Unlock()
	}()
	buff, err := c.decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("unable to decompress disk-swapped partition %s: %v", key, err)
	}
	return c.config.FromBytes(buff)
}

func (c *lruCache) spillPath(key string) string {
	// keys are often paths; hash them into safe, flat filenames
	return path.Join(c.config.DiskPath, fmt.Sprintf("%016x.part", xxhash.Sum64String(key)))
}

func (c *lruCache) compress(in []byte) ([]byte, error) {
	if c.config.Codec == Zstd {
		return c.compressor.EncodeAll(in, nil), nil
	}
	var buff bytes.Buffer
	w := lz4.NewWriter(&buff)
	if _, err := w.Write(in); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

func (c *lruCache) decompress(in []byte) ([]byte, error) {
	if c.config.Codec == Zstd {
		return c.decompressor.DecodeAll(in, nil)
	}
	return ioutil.ReadAll(lz4.NewReader(bytes.NewReader(in)))
}
