package monitor

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// StressCPU CPU 超过这个值就算高压
const StressCPU = 80.0

// Stats 一次采样结果
type Stats struct {
	CPU      float64 // CPU 使用率 (0-100)
	Mem      float64 // 内存 使用率 (0-100)
	Stressed bool    // CPU > 80
}

// Sampler 真正去取数据的函数，测试时可以换掉
type Sampler func() (Stats, error)

// Run 启动监控 (阻塞，调用方自己开 goroutine)
// 每次采样都往 out 里送；out 满了就丢掉旧的，只留最新的
func Run(ctx context.Context, interval time.Duration, out chan Stats) {
	RunWith(ctx, interval, Sample, out)
}

// RunWith 同 Run，可以指定采样函数
func RunWith(ctx context.Context, interval time.Duration, sample Sampler, out chan Stats) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if s, err := sample(); err != nil {
			log.Printf("monitor: sample failed: %v", err)
		} else {
			publish(out, s)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// publish 不阻塞地发送：满了先扔掉一个旧的
func publish(out chan Stats, s Stats) {
	for {
		select {
		case out <- s:
			return
		default:
		}
		select {
		case <-out:
		default:
		}
	}
}

// Sample 用 gopsutil 取一次 CPU 和内存
func Sample() (Stats, error) {
	// 1. 获取内存
	v, err := mem.VirtualMemory()
	if err != nil {
		return Stats{}, err
	}

	// 2. 获取 CPU
	// Percent(0, false) 用上次调用的间隔计算所有核的平均值，不阻塞
	c, err := cpu.Percent(0, false)
	if err != nil {
		return Stats{}, err
	}

	var s Stats
	if len(c) > 0 {
		s.CPU = c[0]
	}
	s.Mem = v.UsedPercent
	return normalize(s), nil
}

// normalize 保留 1 位小数，顺便算一下是否高压
func normalize(s Stats) Stats {
	s.CPU = math.Round(s.CPU*10) / 10
	s.Mem = math.Round(s.Mem*10) / 10
	s.Stressed = s.CPU > StressCPU
	return s
}
