/*
Package iteratable implements iteratable container data structures.

Set is a special purpose set type, suitable mainly for implementing algorithms
around scanners, parsers, etc. These kinds of algorithms are often more
straightforward to describe as set constructions and operations. A Set may be
modified while it is being iterated; the iteration will see items appended
mid-loop, which is the natural shape of closure computations.

Unusually, Union is destructive: it grows the receiver in place.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
