package nmea

// Kind constants are declared in tag order so kindTable stays sorted for
// binary search.
const (
	KindUnknown Kind = iota
	KindAAM
	KindABK
	KindABM
	KindACA
	KindACK
	KindACS
	KindADS
	KindAIR
	KindAKD
	KindALA
	KindALM
	KindALR
	KindAPA
	KindAPB
	KindASD
	KindBBM
	KindBEC
	KindBOD
	KindBWC
	KindBWR
	KindBWW
	KindCEK
	KindCOP
	KindCUR
	KindDBK
	KindDBS
	KindDBT
	KindDCN
	KindDCR
	KindDDC
	KindDOR
	KindDPT
	KindDSC
	KindDSE
	KindDSI
	KindDSR
	KindDTM
	KindETL
	KindEVE
	KindFIR
	KindFSI
	KindGBS
	KindGGA
	KindGLC
	KindGLL
	KindGMP
	KindGNS
	KindGRS
	KindGSA
	KindGST
	KindGSV
	KindGTD
	KindGXA
	KindHDG
	KindHDM
	KindHDT
	KindHFB
	KindHMR
	KindHMS
	KindHSC
	KindHTC
	KindHTD
	KindITS
	KindLCD
	KindLR1
	KindLR2
	KindLR3
	KindLRF
	KindMDA
	KindMLA
	KindMSK
	KindMSS
	KindMTW
	KindMWD
	KindMWV
	KindOLN
	KindOSD
	KindR00
	KindRLM
	KindRMA
	KindRMB
	KindRMC
	KindROT
	KindRPM
	KindRSA
	KindRSD
	KindRTE
	KindSF1
	KindSSD
	KindSTN
	KindTDS
	KindTFI
	KindTLB
	KindTLL
	KindTPC
	KindTPR
	KindTPT
	KindTRF
	KindTTM
	KindTUT
	KindTXT
	KindVBW
	KindVDM
	KindVDO
	KindVDR
	KindVHW
	KindVLW
	KindVPW
	KindVSD
	KindVTG
	KindVWR
	KindWCV
	KindWDC
	KindWDR
	KindWNC
	KindWPL
	KindXDR
	KindXTE
	KindXTR
	KindZDA
	KindZDL
	KindZFO
	KindZTG
)

var kindTable = [...]kindInfo{
	KindAAM: {"AAM", "Waypoint arrival alarm"},
	KindABK: {"ABK", "AIS addressed and binary broadcast acknowledgement"},
	KindABM: {"ABM", "AIS addressed binary and safety related message"},
	KindACA: {"ACA", "AIS regional channel assignment"},
	KindACK: {"ACK", "Acknowledge alarm"},
	KindACS: {"ACS", "AIS channel management information source"},
	KindADS: {"ADS", "Automatic device status"},
	KindAIR: {"AIR", "AIS interrogation request"},
	KindAKD: {"AKD", "Acknowledge detail alarm condition"},
	KindALA: {"ALA", "Report detailed alarm condition"},
	KindALM: {"ALM", "GPS almanac data"},
	KindALR: {"ALR", "Set alarm state"},
	KindAPA: {"APA", "Autopilot sentence A"},
	KindAPB: {"APB", "Autopilot sentence B"},
	KindASD: {"ASD", "Autopilot system data"},
	KindBBM: {"BBM", "AIS broadcast binary message"},
	KindBEC: {"BEC", "Bearing and distance to waypoint, dead reckoning"},
	KindBOD: {"BOD", "Bearing origin to destination"},
	KindBWC: {"BWC", "Bearing and distance to waypoint, great circle"},
	KindBWR: {"BWR", "Bearing and distance to waypoint, rhumb line"},
	KindBWW: {"BWW", "Bearing waypoint to waypoint"},
	KindCEK: {"CEK", "Configure encryption key"},
	KindCOP: {"COP", "Configure operational period"},
	KindCUR: {"CUR", "Water current layer"},
	KindDBK: {"DBK", "Depth below keel"},
	KindDBS: {"DBS", "Depth below surface"},
	KindDBT: {"DBT", "Depth below transducer"},
	KindDCN: {"DCN", "Decca position"},
	KindDCR: {"DCR", "Device capability report"},
	KindDDC: {"DDC", "Display dimming control"},
	KindDOR: {"DOR", "Door status detection"},
	KindDPT: {"DPT", "Depth of water"},
	KindDSC: {"DSC", "Digital selective calling information"},
	KindDSE: {"DSE", "Expanded digital selective calling"},
	KindDSI: {"DSI", "DSC transponder initiate"},
	KindDSR: {"DSR", "DSC transponder response"},
	KindDTM: {"DTM", "Datum reference"},
	KindETL: {"ETL", "Engine telegraph operation status"},
	KindEVE: {"EVE", "General event message"},
	KindFIR: {"FIR", "Fire detection"},
	KindFSI: {"FSI", "Frequency set information"},
	KindGBS: {"GBS", "GNSS satellite fault detection"},
	KindGGA: {"GGA", "Global positioning system fix data"},
	KindGLC: {"GLC", "Geographic position, Loran-C"},
	KindGLL: {"GLL", "Geographic position, latitude/longitude"},
	KindGMP: {"GMP", "GNSS map projection fix data"},
	KindGNS: {"GNS", "GNSS fix data"},
	KindGRS: {"GRS", "GNSS range residuals"},
	KindGSA: {"GSA", "GNSS DOP and active satellites"},
	KindGST: {"GST", "GNSS pseudorange noise statistics"},
	KindGSV: {"GSV", "GNSS satellites in view"},
	KindGTD: {"GTD", "Geographic location in time differences"},
	KindGXA: {"GXA", "TRANSIT position"},
	KindHDG: {"HDG", "Heading, deviation and variation"},
	KindHDM: {"HDM", "Heading, magnetic"},
	KindHDT: {"HDT", "Heading, true"},
	KindHFB: {"HFB", "Trawl headrope to footrope and bottom"},
	KindHMR: {"HMR", "Heading monitor receive"},
	KindHMS: {"HMS", "Heading monitor set"},
	KindHSC: {"HSC", "Heading steering command"},
	KindHTC: {"HTC", "Heading/track control command"},
	KindHTD: {"HTD", "Heading/track control data"},
	KindITS: {"ITS", "Trawl door spread 2 distance"},
	KindLCD: {"LCD", "Loran-C signal data"},
	KindLR1: {"LR1", "AIS long-range reply sentence 1"},
	KindLR2: {"LR2", "AIS long-range reply sentence 2"},
	KindLR3: {"LR3", "AIS long-range reply sentence 3"},
	KindLRF: {"LRF", "AIS long-range function"},
	KindMDA: {"MDA", "Meteorological composite"},
	KindMLA: {"MLA", "GLONASS almanac data"},
	KindMSK: {"MSK", "MSK receiver interface"},
	KindMSS: {"MSS", "MSK receiver signal status"},
	KindMTW: {"MTW", "Water temperature"},
	KindMWD: {"MWD", "Wind direction and speed"},
	KindMWV: {"MWV", "Wind speed and angle"},
	KindOLN: {"OLN", "Omega lane numbers"},
	KindOSD: {"OSD", "Own ship data"},
	KindR00: {"R00", "Waypoints in active route"},
	KindRLM: {"RLM", "Return link message"},
	KindRMA: {"RMA", "Recommended minimum specific Loran-C data"},
	KindRMB: {"RMB", "Recommended minimum navigation information"},
	KindRMC: {"RMC", "Recommended minimum specific GNSS data"},
	KindROT: {"ROT", "Rate of turn"},
	KindRPM: {"RPM", "Revolutions"},
	KindRSA: {"RSA", "Rudder sensor angle"},
	KindRSD: {"RSD", "Radar system data"},
	KindRTE: {"RTE", "Routes"},
	KindSF1: {"SF1", "Single sideband frequency set"},
	KindSSD: {"SSD", "AIS ship static data"},
	KindSTN: {"STN", "Multiple data id"},
	KindTDS: {"TDS", "Trawl door spread distance"},
	KindTFI: {"TFI", "Trawl filling indicator"},
	KindTLB: {"TLB", "Target label"},
	KindTLL: {"TLL", "Target latitude and longitude"},
	KindTPC: {"TPC", "Trawl position cartesian coordinates"},
	KindTPR: {"TPR", "Trawl position relative vessel"},
	KindTPT: {"TPT", "Trawl position true"},
	KindTRF: {"TRF", "TRANSIT fix data"},
	KindTTM: {"TTM", "Tracked target message"},
	KindTUT: {"TUT", "Transmission of multi-language text"},
	KindTXT: {"TXT", "Text transmission"},
	KindVBW: {"VBW", "Dual ground/water speed"},
	KindVDM: {"VDM", "AIS VHF data-link message"},
	KindVDO: {"VDO", "AIS VHF data-link own-vessel report"},
	KindVDR: {"VDR", "Set and drift"},
	KindVHW: {"VHW", "Water speed and heading"},
	KindVLW: {"VLW", "Dual ground/water distance"},
	KindVPW: {"VPW", "Speed measured parallel to wind"},
	KindVSD: {"VSD", "AIS voyage static data"},
	KindVTG: {"VTG", "Course over ground and ground speed"},
	KindVWR: {"VWR", "Relative wind speed and angle"},
	KindWCV: {"WCV", "Waypoint closure velocity"},
	KindWDC: {"WDC", "Distance to waypoint, great circle"},
	KindWDR: {"WDR", "Distance to waypoint, rhumb line"},
	KindWNC: {"WNC", "Distance waypoint to waypoint"},
	KindWPL: {"WPL", "Waypoint location"},
	KindXDR: {"XDR", "Transducer measurements"},
	KindXTE: {"XTE", "Cross-track error, measured"},
	KindXTR: {"XTR", "Cross-track error, dead reckoning"},
	KindZDA: {"ZDA", "Time and date"},
	KindZDL: {"ZDL", "Time and distance to variable point"},
	KindZFO: {"ZFO", "UTC and time from origin waypoint"},
	KindZTG: {"ZTG", "UTC and time to destination waypoint"},
}
