// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

type noopBackend struct{}

func (noopBackend) counter(string) CountMeter                 { return noopMeter{} }
func (noopBackend) counterVec(string, []string) CountVecMeter { return noopMeter{} }
func (noopBackend) gauge(string) GaugeMeter                   { return noopMeter{} }
func (noopBackend) gaugeVec(string, []string) GaugeVecMeter   { return noopMeter{} }
func (noopBackend) handler() http.Handler                     { return http.NotFoundHandler() }

func (noopBackend) histogramVec(string, []string, []int64) HistogramVecMeter {
	return noopMeter{}
}

// noopMeter implements every meter interface.
type noopMeter struct{}

func (noopMeter) Add(int64)                                  {}
func (noopMeter) Set(int64)                                  {}
func (noopMeter) AddWithLabel(int64, map[string]string)      {}
func (noopMeter) SetWithLabel(int64, map[string]string)      {}
func (noopMeter) ObserveWithLabels(int64, map[string]string) {}
